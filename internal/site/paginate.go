package site

import (
	"fmt"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/templates"
)

// ListItem is one entry of a collection index.
type ListItem = templates.Item

// ListPage is one page of a paginated collection index.
type ListPage struct {
	Number      int
	Title       string
	Description string
	Items       []ListItem
	PrevURL     string
	NextURL     string
	// OutputPath is the site-relative file the page is written to.
	OutputPath string
	// CurrentURL highlights the collection's navigation entry.
	CurrentURL string
}

// Paginate partitions items into list pages of at most pageSize entries.
// Page 1 is "{baseSlug}/index.html", page i is "{baseSlug}/page{i}.html".
func Paginate(items []ListItem, baseTitle, baseSlug string, pageSize int) ([]ListPage, error) {
	if pageSize <= 0 {
		return nil, errors.ValidationError("page size must be a positive integer").
			WithContext("page_size", pageSize).Build()
	}

	total := len(items)
	count := (total + pageSize - 1) / pageSize
	pages := make([]ListPage, 0, count)

	for i := 1; i <= count; i++ {
		start := (i - 1) * pageSize
		end := min(start+pageSize, total)

		p := ListPage{
			Number:      i,
			Title:       baseTitle,
			Description: baseTitle + " archive page",
			Items:       items[start:end],
			OutputPath:  listPageFile(baseSlug, i),
			CurrentURL:  listPageFile(baseSlug, 1),
		}
		if i > 1 {
			p.Title = fmt.Sprintf("%s - Page %d", baseTitle, i)
			p.Description = fmt.Sprintf("%s %d", p.Description, i)
			p.PrevURL = listPageFile(baseSlug, i-1)
		}
		if i < count {
			p.NextURL = listPageFile(baseSlug, i+1)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func listPageFile(baseSlug string, number int) string {
	if number == 1 {
		return baseSlug + "/index.html"
	}
	return fmt.Sprintf("%s/page%d.html", baseSlug, number)
}
