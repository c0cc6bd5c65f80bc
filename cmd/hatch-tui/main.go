package main

import (
	"github.com/alecthomas/kong"

	"github.com/hatchcli/hatch/project"
	"github.com/hatchcli/hatch/tui"
)

func main() {
	var cli struct {
		New project.NewProjectCmd `cmd:"" name:"new" default:"withargs" help:"Scaffold a project with interactive conflict menus."`
	}

	ctx := kong.Parse(
		&cli,
		kong.Name("hatch-tui"),
		kong.Description("Project scaffolding with bubbletea conflict menus."),
		kong.UsageOnError(),
	)

	cli.New.SetPrompter(tui.NewPrompter())

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
