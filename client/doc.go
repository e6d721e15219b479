// Package client constructs a ModelClient for a configured provider.
//
// The package selects one of the provider adapters under provider/ and wraps
// it with automatic retries on transient errors:
//
//	cfg, err := client.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mc, err := client.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	completion, err := mc.Complete(ctx, conv)
//
// FromEnv reads LLM4S_PROVIDER, LLM4S_MODEL, and the selected provider's
// conventional API key variable, loading a .env file first when present.
// Programs that manage their own configuration can fill in a Config
// directly instead.
package client
