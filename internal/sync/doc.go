// Package sync runs one conversion: load rules from a source tool, render
// them for each target tool, compare the planned files with disk, and write
// the ones that changed.
//
// # Fault isolation
//
// Configuration problems (unknown tool, missing source directory) fail the
// whole run before anything is written. Everything after loading is per
// target: a render panic, a diff read error or a write error is recorded on
// that target's TargetResult and the remaining targets still run.
//
//	res, err := sync.Run(ctx, sync.Options{
//	    Source:  model.Cursor,
//	    Targets: []model.Tool{model.Kiro, model.Windsurf},
//	    Paths:   model.DefaultPaths(root),
//	})
//	if err != nil {
//	    return err // configuration error
//	}
//	fmt.Print(res.Summary())
//	return res.Err()
//
// # Check mode
//
// With DryRun set nothing is written; Result.Drift reports which files a
// real run would create or modify.
package sync
