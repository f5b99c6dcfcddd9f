package collector

import (
	"context"
	"fmt"

	nmap "github.com/Ullaakut/nmap/v3"
)

// managementPorts are probed during discovery: SSH and NETCONF.
const managementPorts = "22,830"

// Device is one discovered network device.
type Device struct {
	Address   string `json:"address"`
	Hostname  string `json:"hostname,omitempty"`
	OpenPorts []int  `json:"open_ports"`
}

// Discover scans the targets (CIDR ranges or addresses) for hosts with an
// open management port. Hosts that are up but unreachable on every
// management port are dropped from the result.
func (c *Collector) Discover(ctx context.Context, targets []string) ([]Device, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("no discovery targets configured")
	}

	scanner, err := nmap.NewScanner(
		ctx,
		nmap.WithTargets(targets...),
		nmap.WithPorts(managementPorts),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	c.logger.Printf("collector: scanning %d targets for management ports", len(targets))
	result, warnings, err := scanner.Run()
	if err != nil {
		return nil, fmt.Errorf("discovery scan failed: %w", err)
	}
	if warnings != nil && len(*warnings) > 0 {
		c.logger.Printf("collector: scan warnings: %v", *warnings)
	}

	var devices []Device
	for _, host := range result.Hosts {
		if device, ok := deviceFromHost(host); ok {
			devices = append(devices, device)
		}
	}

	c.logger.Printf("collector: discovered %d manageable devices", len(devices))
	return devices, nil
}

// deviceFromHost converts one scan result, keeping only hosts that are up
// with at least one open management port.
func deviceFromHost(host nmap.Host) (Device, bool) {
	if host.Status.State != "up" || len(host.Addresses) == 0 {
		return Device{}, false
	}

	device := Device{Address: host.Addresses[0].Addr}
	if len(host.Hostnames) > 0 {
		device.Hostname = host.Hostnames[0].Name
	}
	for _, port := range host.Ports {
		if port.State.State == "open" {
			device.OpenPorts = append(device.OpenPorts, int(port.ID))
		}
	}
	if len(device.OpenPorts) == 0 {
		return Device{}, false
	}
	return device, true
}
