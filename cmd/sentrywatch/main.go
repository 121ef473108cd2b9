/*
 * Copyright (C) 2026 Mustafa Naseer (Mustafa Gaeed)
 *
 * This file is part of sentrywatch.
 *
 * sentrywatch is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * sentrywatch is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with sentrywatch. If not, see the LICENSE file in the project root.
 */
package main

import (
	"fmt"
	"os"

	"github.com/urustack/sentrywatch/internal/cli"
	"github.com/urustack/sentrywatch/pkg/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		log := logger.L()
		log.Error().Err(err).Msg("fatal error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
