// Package main starts the StaffKeeper terminal client: it restores the
// saved session, mounts the navigation shell, and hands control to the
// interactive command loop.
package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"os"

	"github.com/avolkov/StaffKeeper/internal/client/cli"
	"github.com/avolkov/StaffKeeper/internal/client/gateway"
	"github.com/avolkov/StaffKeeper/internal/client/remote"
	"github.com/avolkov/StaffKeeper/internal/client/session"
	"github.com/avolkov/StaffKeeper/internal/config"
)

var (
	version   string
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	ctx := context.Background()

	api := remote.New(options.ServerURL, nil)
	store := gateway.New(api)

	sess := session.New(api)
	sess.Bootstrap(ctx)

	app := cli.NewApp(ctx, sess, store, os.Stdin, os.Stdout)
	defer app.Close()

	cli.Run(ctx, app, bufio.NewScanner(os.Stdin))
}
