package command

import (
	"github.com/shirou/gopsutil/v3/process"
)

// killTree kills pid and all of its descendants. Descendants are collected
// before anything is killed so that orphans reparented to init are not missed.
func killTree(pid int) error {
	root, err := process.NewProcess(int32(pid))
	if err != nil {
		return err
	}

	procs := []*process.Process{root}
	procs = append(procs, descendants(root)...)

	var firstErr error
	// Kill children first so the shell cannot respawn them.
	for i := len(procs) - 1; i >= 0; i-- {
		if err := procs[i].Kill(); err != nil && firstErr == nil && procs[i].Pid == root.Pid {
			firstErr = err
		}
	}
	return firstErr
}

func descendants(p *process.Process) []*process.Process {
	children, err := p.Children()
	if err != nil {
		return nil
	}
	var all []*process.Process
	for _, child := range children {
		all = append(all, child)
		all = append(all, descendants(child)...)
	}
	return all
}
