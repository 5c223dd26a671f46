package domain

import "fmt"

const WelcomeTemplate = "welcome"

// Templates maps a template name to a format string with a single %s slot
// for the member mention.
var Templates = map[string]string{
	WelcomeTemplate: "Welcome to the server, %s! Take a look around and say hi :wave:",
}

func RenderTemplate(name string, mention string) (string, error) {
	format, ok := Templates[name]
	if !ok {
		return "", fmt.Errorf("template not found: %v", name)
	}
	return fmt.Sprintf(format, mention), nil
}
