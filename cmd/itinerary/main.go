package main

import (
	"os"
	"strings"

	"itinerary-cli/internal/cli"
)

func isItemID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "item-") && len(s) > len("item-")
}

// rewriteItemShorthand turns `itinerary <item-id> --over <target>` into
// `itinerary items move <item-id> --over <target>`.
func rewriteItemShorthand(argv []string) []string {
	valueFlags := map[string]bool{
		"--db":        true,
		"--trip":      true,
		"--actor":     true,
		"--format":    true,
		"--log-level": true,
	}
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if strings.HasPrefix(a, "-") {
			if valueFlags[a] {
				i++
			}
			continue
		}
		if !isItemID(a) {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "items", "move")
		out = append(out, argv[i:]...)
		return out
	}
	return argv
}

func main() {
	os.Args = rewriteItemShorthand(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
