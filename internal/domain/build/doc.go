/*
Package build runs the simulated native build of a project.

An Orchestrator owns one build session at a time. Start appends the initial
system line, then walks the injected step table in order: wait the step
delay, append the step message, raise progress to the step target. The run
always succeeds; it ends completed or, when Cancel is called, cancelled.

	orch, err := build.NewOrchestrator(build.DefaultSteps(), logger)
	orch.WithRecorder(historyStore).WithMetrics(metrics)

	events, unsubscribe := orch.Subscribe()
	defer unsubscribe()

	snap, started := orch.Start(ctx, cfg)

State machine:

	Idle --Start--> Building --steps done--> Completed --Reset/Start--> ...
	                    |
	                  Cancel
	                    v
	                  Idle

Step tables can be loaded from YAML, TOML or JSON with LoadSteps.
*/
package build
