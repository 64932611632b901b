package domain

import (
	"strings"
)

// Separator joins task titles in the persisted blob. Titles that contain it
// do not survive a reload intact.
const Separator = ","

type Task string

type TaskList []Task

func (l TaskList) Clone() TaskList {
	if l == nil {
		return TaskList{}
	}

	cloned := make(TaskList, len(l))
	copy(cloned, l)
	return cloned
}

func (l TaskList) Titles() []string {
	titles := make([]string, 0, len(l))
	for _, task := range l {
		titles = append(titles, string(task))
	}

	return titles
}

// IsBlankTitle reports whether title is empty once surrounding whitespace is
// removed.
func IsBlankTitle(title string) bool {
	return strings.TrimSpace(title) == ""
}

// Encode joins every title with Separator.
func Encode(list TaskList) string {
	return strings.Join(list.Titles(), Separator)
}

// Decode splits raw on Separator and keeps empty substrings as zero-length
// titles. The empty string decodes to an empty list, which also means the
// single-element list [""] does not round-trip.
func Decode(raw string) TaskList {
	if raw == "" {
		return TaskList{}
	}

	parts := strings.Split(raw, Separator)
	list := make(TaskList, 0, len(parts))
	for _, part := range parts {
		list = append(list, Task(part))
	}

	return list
}
