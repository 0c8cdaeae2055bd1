package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mcamden/wildrun/pkg/content"
	"github.com/mcamden/wildrun/pkg/worldmap"
)

// Lints the compiled-in content registry: id formats on top of the
// referential checks content.Validate already runs, then prints a
// registry summary. CI runs this so a bad authoring change fails the
// build instead of the boot.
func main() {
	linter := &ContentLinter{}
	linter.lintRegistry()

	if err := content.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	if len(linter.errors) > 0 {
		fmt.Fprintf(os.Stderr, "Lint errors:\n%s\n", strings.Join(linter.errors, "\n"))
		os.Exit(1)
	}

	printSummary()
	fmt.Println("Content registry is valid!")
}

type ContentLinter struct {
	errors []string
}

func (l *ContentLinter) lintRegistry() {
	for _, s := range content.AllSpecies() {
		l.lintIDFormat("species ID", s.ID)
		for _, f := range s.Forms {
			l.lintIDFormat("form ID", f.ID)
			if f.Name == "" {
				l.addError(fmt.Sprintf("form '%s' has no display name", f.ID))
			}
		}
	}

	for _, e := range content.AllEvents() {
		l.lintIDFormat("event ID", e.ID)
		if e.Title == "" {
			l.addError(fmt.Sprintf("event '%s' has no title", e.ID))
		}
		if e.Prompt == "" {
			l.addError(fmt.Sprintf("event '%s' has no prompt", e.ID))
		}
		for i, c := range e.Choices {
			if c.Label == "" {
				l.addError(fmt.Sprintf("event '%s' choice %d has no label", e.ID, i))
			}
			for j, b := range c.Outcome.Branches {
				if b.Weight <= 0 {
					l.addError(fmt.Sprintf("event '%s' choice %d branch %d has non-positive weight", e.ID, i, j))
				}
			}
		}
	}

	for act := 1; act <= content.ActCount(); act++ {
		g, ok := content.ActTemplate(act)
		if !ok {
			continue
		}
		for _, id := range g.IDs() {
			l.lintIDFormat(fmt.Sprintf("act %d node ID", act), id)
		}
	}
}

func (l *ContentLinter) lintIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		l.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (l *ContentLinter) addError(msg string) {
	l.errors = append(l.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

// printSummary reports what the registry holds, with display names
// derived from ids where the author left the name blank.
func printSummary() {
	title := cases.Title(language.English)

	species := content.AllSpecies()
	fmt.Printf("Species: %d\n", len(species))
	for _, s := range species {
		name := s.Name
		if name == "" {
			name = title.String(strings.ReplaceAll(s.ID, "_", " "))
		}
		forms := make([]string, 0, len(s.Forms))
		for _, f := range s.Forms {
			forms = append(forms, f.ID)
		}
		fmt.Printf("  %-16s %s\n", name, strings.Join(forms, " -> "))
	}

	events := content.AllEvents()
	fmt.Printf("Events: %d\n", len(events))
	for _, e := range events {
		fmt.Printf("  %-20s %d choices\n", e.Title, len(e.Choices))
	}

	fmt.Printf("Acts: %d\n", content.ActCount())
	for act := 1; act <= content.ActCount(); act++ {
		g, ok := content.ActTemplate(act)
		if !ok {
			continue
		}
		counts := map[worldmap.NodeType]int{}
		for _, id := range g.IDs() {
			counts[g[id].Type]++
		}
		fmt.Printf("  Act %d: %d nodes (%d battles, %d events, %d recruits)\n",
			act, len(g), counts[worldmap.NodeBattle],
			counts[worldmap.NodeEvent], counts[worldmap.NodeRecruit])
	}
}
