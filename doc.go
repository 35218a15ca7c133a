// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package logicsim implements an event-driven digital logic simulator.

A Circuit is a graph of elements (gates, adders, flip-flops, etc.) and nodes.
Each element owns input and output port nodes, and ports are connected together
with wires, either directly or through intermediate junction nodes. Every node
carries a Value of a given bit width, which may be floating (undefined).

Simulation is driven by passes: RunPass schedules all signal sources, then
repeatedly takes the oldest item of the simulation queue and resolves it until
the queue is empty. Resolving a node pushes its value to its neighbors;
resolving an element computes its outputs from its inputs. Elements only
schedule outputs whose value actually changed, so a pass over a stable circuit
does very little work.

Conflicts are reported as diagnostics: a ContentionError when two outputs drive
different values on the same net, a BitWidthError when ports of different widths
are connected. Those are advisory. A pass that exceeds the step limit (usually
an oscillating loop) or that ends with conflicting tri-state buffers fails with
a fatal error, and further passes are refused until ClearFatal is called.

Element kinds are registered by name with Register so that circuits can be
rebuilt from a description. The simlib package provides the standard library
of elements.

	c := logicsim.New("demo")
	a, _ := simlib.Input(logicsim.Params{"width": 4})
	c.MustPlace(a, "out=a")
	...
	r, err := c.RunPass(false)
*/
package logicsim
