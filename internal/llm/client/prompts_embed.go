package client

import "embed"

//go:embed prompts/*.txt
var prompts embed.FS

// loadPrompt reads a bundled prompt by file name.
func loadPrompt(name string) (string, error) {
	data, err := prompts.ReadFile("prompts/" + name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
