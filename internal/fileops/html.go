package fileops

import (
	"fmt"
	"html"
	"regexp"
)

var (
	titleTag  = regexp.MustCompile(`(?is)<title[^>]*>.*?</title>`)
	headClose = regexp.MustCompile(`(?i)</head>`)
	headOpen  = regexp.MustCompile(`(?i)<head[^>]*>`)
)

// UpdateHTMLTitle sets the document title of the HTML file at path.
// An existing <title> is replaced; otherwise the tag is inserted before
// </head>, after <head>, or at the very top, in that order of preference.
func UpdateHTMLTitle(path, title string) error {
	content, err := ReadTextFile(path)
	if err != nil {
		return err
	}
	return WriteTextFile(path, SetHTMLTitle(content, title))
}

// SetHTMLTitle is the pure-text form of UpdateHTMLTitle.
func SetHTMLTitle(content, title string) string {
	tag := "<title>" + html.EscapeString(title) + "</title>"

	switch {
	case titleTag.MatchString(content):
		replaced := false
		return titleTag.ReplaceAllStringFunc(content, func(m string) string {
			if replaced {
				return m
			}
			replaced = true
			return tag
		})
	case headClose.MatchString(content):
		loc := headClose.FindStringIndex(content)
		return content[:loc[0]] + tag + "\n" + content[loc[0]:]
	case headOpen.MatchString(content):
		loc := headOpen.FindStringIndex(content)
		return content[:loc[1]] + fmt.Sprintf("\n  %s", tag) + content[loc[1]:]
	default:
		return tag + "\n" + content
	}
}
