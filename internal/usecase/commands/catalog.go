package commands

import "discoBot/internal/domain"

type Category string

const (
	CategoryUtility    Category = "utility"
	CategorySports     Category = "sports"
	CategoryModeration Category = "moderation"
)

// CommandDescriptor describes a builtin command for the help pages.
type CommandDescriptor struct {
	Name        string
	Aliases     []string
	Category    Category
	Description string
	Usage       string
	Permissions []domain.Permission
}

// BuiltinCommandCatalog lists the commands shipped with the bot, in help order.
func BuiltinCommandCatalog() []CommandDescriptor {
	return []CommandDescriptor{
		{
			Name:        "calculate",
			Aliases:     []string{"calc"},
			Category:    CategoryUtility,
			Description: "Calculate product weights",
			Usage:       "calculate [product] [quantity]",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "clear",
			Aliases:     []string{"purge"},
			Category:    CategoryUtility,
			Description: "Delete messages (1-100)",
			Usage:       "clear [amount]",
			Permissions: []domain.Permission{domain.PermManageMessages},
		},
		{
			Name:        "ping",
			Category:    CategoryUtility,
			Description: "Check bot response time",
			Usage:       "ping",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "help",
			Aliases:     []string{"commands"},
			Category:    CategoryUtility,
			Description: "Show this help menu",
			Usage:       "help [page]",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "fixtures",
			Aliases:     []string{"pl", "premierleague"},
			Category:    CategorySports,
			Description: "Show today's Premier League fixtures",
			Usage:       "fixtures",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "table",
			Aliases:     []string{"pltable"},
			Category:    CategorySports,
			Description: "Display current Premier League table",
			Usage:       "table",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "live",
			Aliases:     []string{"livescores"},
			Category:    CategorySports,
			Description: "Show live Premier League scores",
			Usage:       "live",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "next",
			Aliases:     []string{"upcoming"},
			Category:    CategorySports,
			Description: "Show the next Premier League fixtures",
			Usage:       "next",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "sportshelp",
			Aliases:     []string{"football"},
			Category:    CategorySports,
			Description: "Explain the sports commands",
			Usage:       "sportshelp",
			Permissions: []domain.Permission{domain.PermUser},
		},
		{
			Name:        "addban",
			Aliases:     []string{"addword"},
			Category:    CategoryModeration,
			Description: "Add a word to the banned list",
			Usage:       "addban [word]",
			Permissions: []domain.Permission{domain.PermManageMessages},
		},
		{
			Name:        "removeban",
			Aliases:     []string{"removeword"},
			Category:    CategoryModeration,
			Description: "Remove a word from the banned list",
			Usage:       "removeban [word]",
			Permissions: []domain.Permission{domain.PermManageMessages},
		},
		{
			Name:        "listban",
			Aliases:     []string{"banlist"},
			Category:    CategoryModeration,
			Description: "Show all banned words",
			Usage:       "listban",
			Permissions: []domain.Permission{domain.PermManageMessages},
		},
		{
			Name:        "clearwarnings",
			Aliases:     []string{"clearwarns"},
			Category:    CategoryModeration,
			Description: "Clear warnings for a user",
			Usage:       "clearwarnings [@user]",
			Permissions: []domain.Permission{domain.PermManageMessages},
		},
	}
}

func descriptorsIn(cat Category) []CommandDescriptor {
	var out []CommandDescriptor
	for _, d := range BuiltinCommandCatalog() {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}
