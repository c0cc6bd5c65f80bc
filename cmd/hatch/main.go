package main

import (
	"github.com/alecthomas/kong"

	"github.com/hatchcli/hatch/catalog"
	"github.com/hatchcli/hatch/project"
	"github.com/hatchcli/hatch/version"
)

func main() {
	var cli struct {
		New     project.NewProjectCmd `cmd:"" name:"new" help:"Scaffold a project, initialize git and publish it."`
		Catalog catalog.Cmd           `cmd:"" name:"catalog" help:"List Python files up to two directory levels deep."`
		Version kong.VersionFlag      `name:"version" help:"Print version and exit."`
	}

	ctx := kong.Parse(
		&cli,
		kong.Name("hatch"),
		kong.Description("Project scaffolding and cataloging tools."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.FromBuildInfo()},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
