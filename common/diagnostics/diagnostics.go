// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package diagnostics attaches optional performance instrumentation to CLI
// commands: CPU profiling, execution tracing, and a live pprof server. All
// three are off unless requested through their flags, so wrapped commands pay
// nothing in the default case.
package diagnostics

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/urfave/cli/v2"
)

// AddPerformanceDiagnosticsAction wraps a command action with the
// instrumentation selected by the given flags: a port on diagnosticsFlag
// starts a pprof server for the lifetime of the process, a file name on
// cpuProfileFlag records a CPU profile of the wrapped action, and a file
// name on traceFlag records an execution trace of it. Profile and trace
// files are closed before the wrapper returns.
func AddPerformanceDiagnosticsAction(action cli.ActionFunc, diagnosticsFlag *cli.IntFlag, cpuProfileFlag, traceFlag *cli.StringFlag) cli.ActionFunc {
	return func(context *cli.Context) error {
		startDiagnosticServer(context.Int(diagnosticsFlag.Names()[0]))

		if file := strings.TrimSpace(context.String(cpuProfileFlag.Names()[0])); file != "" {
			if err := startCpuProfiler(file); err != nil {
				return err
			}
			defer pprof.StopCPUProfile()
		}

		if file := strings.TrimSpace(context.String(traceFlag.Names()[0])); file != "" {
			if err := startTracer(file); err != nil {
				return err
			}
			defer trace.Stop()
		}

		return action(context)
	}
}

// startDiagnosticServer hosts the pprof HTTP handlers on localhost at the
// given port; port values outside the valid range disable the server. Block
// and mutex sampling are raised to full rate while the server runs, which
// slows the observed workload.
func startDiagnosticServer(port int) {
	if port <= 0 || port >= (1<<16) {
		return
	}
	fmt.Printf("Starting diagnostic server at port http://localhost:%d\n", port)
	fmt.Printf("(see https://pkg.go.dev/net/http/pprof#hdr-Usage_examples for usage examples)\n")
	fmt.Printf("Block and mutex sampling rate is set to 100%% for diagnostics, which may impact overall performance\n")
	go func() {
		addr := fmt.Sprintf("localhost:%d", port)
		log.Println(http.ListenAndServe(addr, nil))
	}()
	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)
}

func startCpuProfiler(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %s", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("could not start CPU profile: %s", err)
	}
	return nil
}

func startTracer(filename string) error {
	traceFile, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %v", err)
	}
	if err := trace.Start(traceFile); err != nil {
		return fmt.Errorf("failed to start trace: %v", err)
	}
	return nil
}
