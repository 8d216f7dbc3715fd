package utils

import (
	"github.com/bwmarrin/discordgo"
)

// PageCount returns the number of pages needed for itemCount items.
func PageCount(itemCount, pageSize int) int {
	if itemCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (itemCount + pageSize - 1) / pageSize
}

// ClampPage clamps a page index to [0, pageCount-1], returning 0 for an
// empty list. Must be applied after any mutation that can shrink the
// list, e.g. deleting the last entry on the last page.
func ClampPage(page, itemCount, pageSize int) int {
	pages := PageCount(itemCount, pageSize)
	if pages == 0 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page > pages-1 {
		return pages - 1
	}
	return page
}

// PageBounds returns the [start, end) slice bounds of a page.
func PageBounds(page, itemCount, pageSize int) (int, int) {
	page = ClampPage(page, itemCount, pageSize)
	start := page * pageSize
	end := start + pageSize
	if end > itemCount {
		end = itemCount
	}
	return start, end
}

// CreatePaginationComponents creates prev/next buttons for a panel page.
func CreatePaginationComponents(currentPage, totalPages int, route, token string) []discordgo.MessageComponent {
	if totalPages <= 1 {
		return nil
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Prev",
					Style:    discordgo.PrimaryButton,
					Disabled: currentPage == 0,
					CustomID: ComponentID{Route: route, Action: "page", Token: token, Extra: "prev"}.String(),
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.PrimaryButton,
					Disabled: currentPage >= totalPages-1,
					CustomID: ComponentID{Route: route, Action: "page", Token: token, Extra: "next"}.String(),
				},
			},
		},
	}
}
