package cmd

import "github.com/fatih/color"

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatVerified(verified bool) string {
	if verified {
		return colorSuccess("verified")
	}
	return colorWarn("unverified")
}

func formatSelected(selected bool) string {
	if selected {
		return colorSuccess("selected")
	}
	return colorWarn("not selected")
}
