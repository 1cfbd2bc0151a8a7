// Package testnodes provides the small set of concrete node
// implementations the engine's own package tests wire into flows:
// concrete node behaviour is out of scope for the engine itself, but
// exercising Flow/Scheduler/NodeUpdater/Executor end to end requires at
// least a source and an arithmetic node.
package testnodes
