// Package agent runs autonomous tool-calling loops against a model client.
//
// An [Agent] wraps a model client and a tool registry. [Agent.Run] seeds a
// conversation with a system prompt and the user's query, then alternates
// between calling the model and executing whatever tool calls it requests,
// feeding each result back into the conversation, until the model answers in
// plain text or the turn budget runs out.
//
//	a := agent.New(mc, registry)
//	state, err := a.Run(ctx, "What's the weather in Paris right now?",
//	    agent.WithMaxTurns(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(state.FinalAnswer())
//
// Failures are partitioned by blast radius. A single tool call that fails,
// whether from an unknown name, bad arguments, or a handler error, becomes
// an error-flagged tool result the model can react to; the run continues. A
// model client failure or a cancelled context ends the run with
// [StatusFailed]. Running out of turns ends it with
// [StatusTurnLimitExceeded], which is a status, not an error.
//
// Subscribe to a run's lifecycle with [WithEvents]:
//
//	events := event.NewChannel()
//	go func() {
//	    for ev := range events {
//	        log.Printf("%s turn=%d", ev.Type, ev.Turn)
//	    }
//	}()
//	state, err := a.Run(ctx, query, agent.WithEvents(events))
package agent
