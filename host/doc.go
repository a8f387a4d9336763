// Package host provides a reference environment for executing contracts.
//
// An Executor owns a wazero runtime serving the "env" host module and an
// in-memory world. Worlds are described by YAML files loaded with Loader,
// which checks the document against the world schema and validates every
// field before BuildWorld turns it into state.
//
//	loader, err := host.NewLoader()
//	cfg, err := loader.LoadFile("world.yaml")
//	exec, err := host.NewExecutor(ctx, host.WithConfig(cfg))
//	defer exec.Close(ctx)
//	receipt, err := exec.Transact(ctx, entities.Message{From: from, To: to, Gas: 1_000_000})
package host
