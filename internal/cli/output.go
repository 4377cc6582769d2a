package cli

import (
	"fmt"
	"os"
)

// User-facing output helpers. All of them honor --quiet; warnings and
// errors go to stderr so hook output stays out of command pipelines.

func printSuccess(format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf(format, args...)))
}

func printHint(format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Println(styleHint.Render(fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Fprintln(os.Stderr, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printError(format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Fprintln(os.Stderr, styleError.Render(fmt.Sprintf(format, args...)))
}
