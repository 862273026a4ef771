package catalog

import (
	"fmt"
	"strings"
)

// validateLessons performs structural checks on a lesson path.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(lessons []Lesson) error {
	var errs []string

	if len(lessons) == 0 {
		return fmt.Errorf("lesson path validation failed:\n  path is empty")
	}

	ids := make(map[string]bool, len(lessons))
	unlocked := 0
	for i, l := range lessons {
		prefix := fmt.Sprintf("lesson %d (%q)", i, l.ID)
		if l.ID == "" {
			errs = append(errs, fmt.Sprintf("lesson %d has an empty ID", i))
		}
		if ids[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		ids[l.ID] = true

		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, prefix+": empty title")
		}
		if _, ok := ParseSubject(string(l.Subject)); !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown subject %q", prefix, l.Subject))
		}
		if l.Stars < 0 || l.Stars > MaxStars {
			errs = append(errs, fmt.Sprintf("%s: stars must be in [0, %d], got %d", prefix, MaxStars, l.Stars))
		}
		if l.Completed && l.Locked {
			errs = append(errs, prefix+": completed lesson cannot be locked")
		}
		if !l.Locked {
			unlocked++
		}
	}

	if unlocked == 0 {
		errs = append(errs, "no unlocked lessons (at least one lesson must be startable)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("lesson path validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
