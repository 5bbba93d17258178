package dictionary

import (
	"time"

	"github.com/giftgrug/giftgrug/pkg/models"
)

// fallbackScribbles are served when the scribble table is empty or
// unreachable, so the wall is never bare.
var fallbackScribbles = []*models.Scribble{
	{
		Slug:        "why-grug-make-scribbles",
		Title:       "Why Grug Make Scribbles",
		PublishedAt: time.Date(2025, time.December, 12, 0, 0, 0, 0, time.UTC),
		Excerpt:     "Man ask Grug many question. Grug write answer on cave wall so man no forget.",
		Content: "Once upon time, man ask Grug same thing every sun. Grug get tired. Grug decide: Grug scribble on cave wall.\n\n" +
			"Scribbles is where Grug put thoughts, gift tricks, and warning for man. Simple. Short. Like club.\n\n" +
			"If man read Scribbles, man have better chance not mess up special sun. Grug proud.",
		IsPublished: true,
	},
	{
		Slug:        "three-gift-rules-grug-never-break",
		Title:       "Three Gift Rules Grug Never Break",
		PublishedAt: time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC),
		Excerpt:     "Grug have rules. Rules keep man safe from womanfolk disappointment face.",
		Content: "Rule one: listen to womanfolk. If she say \"I like this\", Grug believe her. If she say \"no want\", Grug also believe her.\n\n" +
			"Rule two: do not wait for last sun. Shipping slow. Panic big. Man cry.\n\n" +
			"Rule three: if unsure, pick something she use every sun. Cozy, smell good, shiny rock. Simple.",
		IsPublished: true,
	},
}

// FallbackScribbles returns the built-in posts, newest first.
func FallbackScribbles() []*models.Scribble {
	out := make([]*models.Scribble, len(fallbackScribbles))
	copy(out, fallbackScribbles)
	return out
}

// FallbackScribble returns the built-in post with the given slug, or nil.
func FallbackScribble(slug string) *models.Scribble {
	for _, s := range fallbackScribbles {
		if s.Slug == slug {
			return s
		}
	}
	return nil
}
