package infrastructure

import (
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/multierr"
)

// HostInfo describes the machine a sweep ran on.
type HostInfo struct {
	Hostname      string `yaml:"hostname"`
	Platform      string `yaml:"platform"`
	Kernel        string `yaml:"kernel"`
	CPUModel      string `yaml:"cpu_model"`
	LogicalCores  int    `yaml:"logical_cores"`
	PhysicalCores int    `yaml:"physical_cores"`
	MemoryGB      uint64 `yaml:"memory_gb"`
}

// CollectHostInfo gathers what it can; the error lists every probe that
// failed, the returned value is usable either way.
func CollectHostInfo() (HostInfo, error) {
	var (
		info HostInfo
		err  error
	)

	if h, herr := host.Info(); herr == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform + " " + h.PlatformVersion
		info.Kernel = h.KernelVersion
	} else {
		err = multierr.Append(err, herr)
	}

	if c, cerr := cpu.Info(); cerr == nil && len(c) > 0 {
		info.CPUModel = c[0].ModelName
	} else {
		err = multierr.Append(err, cerr)
	}

	if n, cerr := cpu.Counts(true); cerr == nil {
		info.LogicalCores = n
	} else {
		err = multierr.Append(err, cerr)
	}
	if n, cerr := cpu.Counts(false); cerr == nil {
		info.PhysicalCores = n
	} else {
		err = multierr.Append(err, cerr)
	}

	if vm, merr := mem.VirtualMemory(); merr == nil {
		info.MemoryGB = vm.Total / 1024 / 1024 / 1024
	} else {
		err = multierr.Append(err, merr)
	}

	return info, err
}
