package Iservices

// IPromptRenderer fills a named prompt template with variables.
type IPromptRenderer interface {
	Render(name string, vars map[string]string) (string, error)
}
