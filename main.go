// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package main

import (
	"context"
	"log"

	"gioui.org/app"

	"goldchart/chartviz"
	"goldchart/config"
)

func main() {
	c := config.NewGlobalConfig()
	a := chartviz.NewChartApp(c)
	ctx := context.Background()
	err := a.Initialize(ctx)
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	go a.Run(ctx)
	app.Main()
}
