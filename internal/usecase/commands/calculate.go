package commands

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"discoBot/internal/domain"
	"discoBot/internal/usecase/products"
)

type CalculateCommand struct {
	prefix  string
	catalog *products.Catalog
	now     func() time.Time
}

func NewCalculateCommand(prefix string, catalog *products.Catalog) *CalculateCommand {
	return &CalculateCommand{prefix: prefix, catalog: catalog, now: time.Now}
}

func (c *CalculateCommand) Name() string {
	return "calculate"
}

func (c *CalculateCommand) Aliases() []string {
	return []string{"calc"}
}

func (c *CalculateCommand) SupportsPlatform(p domain.Platform) bool {
	return true
}

func (c *CalculateCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	if len(cmdCtx.Args) != 2 {
		return cmdCtx.Reply(ctx, fmt.Sprintf("❌ Usage: `%scalc [product] [number]`\nExample: `%scalc apples 5`", c.prefix, c.prefix))
	}
	cmdCtx.Retire(ctx)

	name := cmdCtx.Args[0]
	qty, err := strconv.ParseFloat(cmdCtx.Args[1], 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return cmdCtx.Reply(ctx, "❌ Please provide a valid number.")
	}

	return cmdCtx.ReplyEmbed(ctx, c.Embed(name, qty))
}

// Embed renders the calculation for name. Unknown products are multiplied
// by one.
func (c *CalculateCommand) Embed(name string, qty float64) domain.Embed {
	if calc, ok := c.catalog.Calculate(name, qty); ok {
		e := domain.Embed{
			Title:     "📊 Product Weight Calculation",
			Color:     domain.ColorTeal,
			Timestamp: c.now(),
		}
		e.AddField("Product", calc.Product, true).
			AddField("Quantity", products.FormatNumber(calc.Quantity)+" "+calc.Unit, true).
			AddField("Weight per unit", products.FormatNumber(calc.WeightPerUnit)+" kg", true).
			AddField("Total Weight", products.FormatNumber(calc.TotalWeight)+" kg", false)
		return e
	}

	n := products.FormatNumber(qty)
	e := domain.Embed{
		Title:     "🧮 Simple Calculation",
		Color:     domain.ColorMint,
		Timestamp: c.now(),
	}
	e.AddField("Product", name, true).
		AddField("Multiplier", n, true).
		AddField("Result", fmt.Sprintf("%s × %s = %s", name, n, n), false)
	return e
}

// Shortcut handles unprefixed "<code> <qty>" messages for known products.
// It reports whether msg was consumed.
func (c *CalculateCommand) Shortcut(ctx context.Context, msg domain.Message, out domain.OutgoingMessagePort) (bool, error) {
	code, qty, ok := c.catalog.ParseShortcut(msg.Text)
	if !ok {
		return false, nil
	}
	cmdCtx := &Context{Message: msg, Out: out, Raw: msg.Text, Args: []string{code, products.FormatNumber(qty)}}
	cmdCtx.Retire(ctx)
	return true, cmdCtx.ReplyEmbed(ctx, c.Embed(code, qty))
}
