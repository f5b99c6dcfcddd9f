package collector

import (
	"io"
	"log"
	"testing"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"
)

func TestNewCollectorDefaults(t *testing.T) {
	c := NewCollector(Credentials{Username: "admin", Password: "secret"})

	if c.port != 22 {
		t.Errorf("expected default port 22, got %d", c.port)
	}
	if c.command != "show running-config" {
		t.Errorf("unexpected default command: %s", c.command)
	}
	if c.connectTimeout != 10*time.Second || c.commandTimeout != 30*time.Second {
		t.Errorf("unexpected default timeouts: connect=%s command=%s", c.connectTimeout, c.commandTimeout)
	}
}

func TestCollectorOptions(t *testing.T) {
	c := NewCollector(
		Credentials{Username: "admin", Password: "secret"},
		WithPort(2222),
		WithConnectTimeout(5*time.Second),
		WithCommandTimeout(time.Minute),
		WithCommand("show configuration"),
		WithLogger(log.New(io.Discard, "", 0)),
	)

	if c.port != 2222 {
		t.Errorf("expected port 2222, got %d", c.port)
	}
	if c.command != "show configuration" {
		t.Errorf("unexpected command: %s", c.command)
	}
	if c.connectTimeout != 5*time.Second || c.commandTimeout != time.Minute {
		t.Errorf("unexpected timeouts: connect=%s command=%s", c.connectTimeout, c.commandTimeout)
	}
}

func TestSSHConfig(t *testing.T) {
	t.Run("password auth", func(t *testing.T) {
		c := NewCollector(Credentials{Username: "admin", Password: "secret"})

		config, err := c.sshConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.User != "admin" {
			t.Errorf("unexpected user: %s", config.User)
		}
		if len(config.Auth) != 1 {
			t.Errorf("expected 1 auth method, got %d", len(config.Auth))
		}
	})

	t.Run("missing username", func(t *testing.T) {
		c := NewCollector(Credentials{Password: "secret"})
		if _, err := c.sshConfig(); err == nil {
			t.Error("expected error for missing username")
		}
	})

	t.Run("no auth material", func(t *testing.T) {
		c := NewCollector(Credentials{Username: "admin"})
		if _, err := c.sshConfig(); err == nil {
			t.Error("expected error without key or password")
		}
	})

	t.Run("unreadable key file", func(t *testing.T) {
		c := NewCollector(Credentials{Username: "admin", KeyFile: "/nonexistent/id_ed25519"})
		if _, err := c.sshConfig(); err == nil {
			t.Error("expected error for unreadable key file")
		}
	})
}

func TestDeviceFromHost(t *testing.T) {
	upHost := func(addr string, ports ...nmap.Port) nmap.Host {
		return nmap.Host{
			Status:    nmap.Status{State: "up"},
			Addresses: []nmap.Address{{Addr: addr}},
			Ports:     ports,
		}
	}
	openPort := func(id uint16) nmap.Port {
		return nmap.Port{ID: id, State: nmap.State{State: "open"}}
	}

	t.Run("host with open ssh port", func(t *testing.T) {
		device, ok := deviceFromHost(upHost("10.0.0.1", openPort(22)))
		if !ok {
			t.Fatal("expected device")
		}
		if device.Address != "10.0.0.1" {
			t.Errorf("unexpected address: %s", device.Address)
		}
		if len(device.OpenPorts) != 1 || device.OpenPorts[0] != 22 {
			t.Errorf("unexpected ports: %v", device.OpenPorts)
		}
	})

	t.Run("closed ports are filtered", func(t *testing.T) {
		host := upHost("10.0.0.2",
			nmap.Port{ID: 22, State: nmap.State{State: "closed"}},
			openPort(830),
		)
		device, ok := deviceFromHost(host)
		if !ok {
			t.Fatal("expected device")
		}
		if len(device.OpenPorts) != 1 || device.OpenPorts[0] != 830 {
			t.Errorf("unexpected ports: %v", device.OpenPorts)
		}
	})

	t.Run("host without open ports is dropped", func(t *testing.T) {
		host := upHost("10.0.0.3", nmap.Port{ID: 22, State: nmap.State{State: "filtered"}})
		if _, ok := deviceFromHost(host); ok {
			t.Error("expected host to be dropped")
		}
	})

	t.Run("down host is dropped", func(t *testing.T) {
		host := nmap.Host{
			Status:    nmap.Status{State: "down"},
			Addresses: []nmap.Address{{Addr: "10.0.0.4"}},
		}
		if _, ok := deviceFromHost(host); ok {
			t.Error("expected down host to be dropped")
		}
	})
}
