package sensors

import (
	"codeberg.org/mutker/syshealth/internal/logger"
	"codeberg.org/mutker/syshealth/internal/metric"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const bytesPerMB = 1024 * 1024

// nvmlProvider reads GPU sensors through NVML. Reads are strictly
// read-only; the provider never changes device state.
type nvmlProvider struct{}

// NewNVMLProvider returns a Provider backed by NVML. Construction never
// fails: when NVML is absent (no NVIDIA GPU, missing driver) every GPU
// leaf reports unavailable with the NVML reason.
func NewNVMLProvider() Provider {
	return &nvmlProvider{}
}

func (p *nvmlProvider) Snapshot() Snapshot {
	return Snapshot{
		GPU: p.readGPU(),
		CPU: CPUSensors{
			TempC:       metric.None[float64]("no CPU temperature provider on this platform"),
			LoadPercent: metric.None[float64]("no CPU load provider on this platform"),
		},
		Disks: nil,
	}
}

func (p *nvmlProvider) readGPU() GPUSensors {
	unavailable := func(reason string) GPUSensors {
		return GPUSensors{
			Name:        metric.None[string](reason),
			VRAMTotalMB: metric.None[float64](reason),
			VRAMUsedMB:  metric.None[float64](reason),
			LoadPercent: metric.None[float64](reason),
			TempC:       metric.None[float64](reason),
		}
	}

	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return unavailable("NVML init failed: " + nvml.ErrorString(ret))
	}
	defer func() {
		if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
			logger.Warn().Msgf("NVML shutdown failed: %v", nvml.ErrorString(ret))
		}
	}()

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return unavailable("NVML device count failed: " + nvml.ErrorString(ret))
	}
	if count == 0 {
		return unavailable("no dedicated GPU detected")
	}

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return unavailable("NVML device handle failed: " + nvml.ErrorString(ret))
	}

	g := GPUSensors{}

	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		g.Name = metric.Some(name)
		logger.Debug().Msgf("Detected GPU: %v", name)
	} else {
		g.Name = metric.None[string]("GPU name read failed: " + nvml.ErrorString(ret))
	}

	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		g.TempC = ValidTempC(float64(temp))
	} else {
		g.TempC = metric.None[float64]("GPU temperature read failed: " + nvml.ErrorString(ret))
	}

	if util, ret := device.GetUtilizationRates(); ret == nvml.SUCCESS {
		g.LoadPercent = ValidPercent(float64(util.Gpu))
	} else {
		g.LoadPercent = metric.None[float64]("GPU utilization read failed: " + nvml.ErrorString(ret))
	}

	if mem, ret := device.GetMemoryInfo(); ret == nvml.SUCCESS {
		g.VRAMTotalMB = ValidNonNegative(float64(mem.Total) / bytesPerMB)
		g.VRAMUsedMB = ValidNonNegative(float64(mem.Used) / bytesPerMB)
	} else {
		reason := "GPU memory info read failed: " + nvml.ErrorString(ret)
		g.VRAMTotalMB = metric.None[float64](reason)
		g.VRAMUsedMB = metric.None[float64](reason)
	}

	return g
}
