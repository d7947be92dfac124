package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"discoBot/internal/domain"
	"discoBot/internal/usecase/products"
)

type helpPage struct {
	title       string
	description string
	color       int
	fields      []domain.EmbedField
}

var unitLabels = map[string]string{
	"trays": "Tray Products",
	"boxes": "Box Products",
}

type HelpCommand struct {
	prefix  string
	catalog *products.Catalog
}

func NewHelpCommand(prefix string, catalog *products.Catalog) *HelpCommand {
	return &HelpCommand{prefix: prefix, catalog: catalog}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Aliases() []string {
	return []string{"commands"}
}

func (c *HelpCommand) SupportsPlatform(p domain.Platform) bool {
	return true
}

func (c *HelpCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	cmdCtx.Retire(ctx)

	pages := c.pages()
	index := 0
	if len(cmdCtx.Args) > 0 {
		n, err := strconv.Atoi(cmdCtx.Args[0])
		if err != nil || n < 1 || n > len(pages) {
			return cmdCtx.Reply(ctx, fmt.Sprintf("❌ Page must be between 1 and %d.", len(pages)))
		}
		index = n - 1
	}

	page := pages[index]
	return cmdCtx.ReplyEmbed(ctx, domain.Embed{
		Title:       page.title,
		Description: page.description,
		Color:       page.color,
		Fields:      page.fields,
		Footer:      fmt.Sprintf("Page %d of %d • Use `%shelp <page>` to navigate", index+1, len(pages), c.prefix),
	})
}

func (c *HelpCommand) pages() []helpPage {
	pages := []helpPage{
		{
			title:       "🛠️ Utility Commands",
			description: "Helpful tools and information",
			color:       domain.ColorMint,
			fields:      c.commandFields(CategoryUtility),
		},
		{
			title:       "⚽ Sports Commands",
			description: "Premier League fixtures and information",
			color:       domain.ColorPurple,
			fields:      c.commandFields(CategorySports),
		},
	}

	if c.catalog != nil {
		pages = append(pages, helpPage{
			title:       "🔢 Product Calculations",
			description: "Quick weight calculations (no prefix needed!)",
			color:       0xF8B500,
			fields:      c.productFields(),
		})
	}

	return append(pages,
		helpPage{
			title:       "🛡️ Moderation Commands",
			description: "Content filtering and moderation tools (Admin only)",
			color:       0xE74C3C,
			fields:      c.commandFields(CategoryModeration),
		},
		helpPage{
			title:       "ℹ️ Bot Information",
			description: "About this Discord bot",
			color:       0x9B59B6,
			fields: []domain.EmbedField{
				{Name: "Features", Value: "Word filter, calculations, football data, utilities"},
				{Name: "Prefix", Value: fmt.Sprintf("All commands start with `%s`", c.prefix)},
				{Name: "Support", Value: "Bot handles errors gracefully and provides helpful feedback"},
			},
		},
	)
}

func (c *HelpCommand) commandFields(cat Category) []domain.EmbedField {
	var fields []domain.EmbedField
	for _, d := range descriptorsIn(cat) {
		value := d.Description
		if len(d.Aliases) > 0 {
			aliases := make([]string, len(d.Aliases))
			for i, a := range d.Aliases {
				aliases[i] = "`" + c.prefix + a + "`"
			}
			value += "\nAlso: " + strings.Join(aliases, ", ")
		}
		fields = append(fields, domain.EmbedField{
			Name:  "`" + c.prefix + d.Usage + "`",
			Value: value,
		})
	}
	return fields
}

func (c *HelpCommand) productFields() []domain.EmbedField {
	byUnit := c.catalog.Codes()
	units := make([]string, 0, len(byUnit))
	for unit := range byUnit {
		units = append(units, unit)
	}
	sort.Strings(units)

	var fields []domain.EmbedField
	for _, unit := range units {
		label, ok := unitLabels[unit]
		if !ok {
			label = "Products (" + unit + ")"
		}
		codes := make([]string, len(byUnit[unit]))
		for i, code := range byUnit[unit] {
			codes[i] = "`" + code + "`"
		}
		fields = append(fields, domain.EmbedField{Name: label, Value: strings.Join(codes, ", ")})
	}

	return append(fields,
		domain.EmbedField{Name: "Usage Examples", Value: "Type `qtrs 5` or `bb 10` (no prefix needed!)"},
		domain.EmbedField{Name: "Alternative", Value: fmt.Sprintf("`%scalc [product] [quantity]` also works", c.prefix)},
	)
}
