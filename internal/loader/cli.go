package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"netimpact/internal/domain"
)

// cliConfig is the intermediate form of a parsed CLI capture, before it is
// shaped into the vendor-neutral tree.
type cliConfig struct {
	hostname   string
	version    string
	interfaces []*cliInterface
	vlans      []*cliVLAN
	acls       []*cliACL
	bgp        *cliBGP
}

type cliInterface struct {
	name        string
	description string
	mtu         int64
	shutdown    bool
	accessVLAN  int64
	ingressACL  string
	egressACL   string
}

type cliVLAN struct {
	id   int64
	name string
}

type cliACL struct {
	name    string
	entries []*cliACLEntry
}

type cliACLEntry struct {
	seq      int64
	action   string
	protocol string
	source   string
	dest     string
	destPort int64
}

type cliBGP struct {
	asn       int64
	routerID  string
	neighbors []*cliNeighbor
}

type cliNeighbor struct {
	addr     string
	remoteAS int64
}

// ParseCLI parses an IOS-style running-config capture and shapes it into
// the same vendor-neutral tree layout that structured exports use, so both
// kinds of input diff against each other.
func ParseCLI(data []byte) (*domain.Tree, error) {
	config, err := scanCLI(data)
	if err != nil {
		return nil, err
	}
	return config.tree(), nil
}

// scanCLI walks the capture line by line. Indented lines belong to the
// last top-level stanza; a bang or a new top-level command closes it.
func scanCLI(data []byte) (*cliConfig, error) {
	config := &cliConfig{}

	var (
		iface *cliInterface
		vlan  *cliVLAN
		acl   *cliACL
	)
	closeBlocks := func() {
		iface, vlan, acl = nil, nil, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimRight(raw, " \t")
		if line == "" || strings.HasPrefix(strings.TrimSpace(line), "!") {
			closeBlocks()
			continue
		}

		indented := line[0] == ' ' || line[0] == '\t'
		fields := strings.Fields(line)

		if !indented {
			closeBlocks()
			switch fields[0] {
			case "hostname":
				if len(fields) > 1 {
					config.hostname = fields[1]
				}
			case "version":
				if len(fields) > 1 {
					config.version = fields[1]
				}
			case "interface":
				if len(fields) < 2 {
					return nil, fmt.Errorf("line %d: interface without a name", lineNo)
				}
				iface = &cliInterface{name: fields[1]}
				config.interfaces = append(config.interfaces, iface)
			case "vlan":
				if len(fields) < 2 {
					continue
				}
				id, err := strconv.ParseInt(fields[1], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad vlan id %q", lineNo, fields[1])
				}
				vlan = &cliVLAN{id: id}
				config.vlans = append(config.vlans, vlan)
			case "ip":
				// ip access-list extended NAME
				if len(fields) >= 4 && fields[1] == "access-list" {
					acl = &cliACL{name: fields[3]}
					config.acls = append(config.acls, acl)
				}
			case "router":
				if len(fields) >= 3 && fields[1] == "bgp" {
					asn, err := strconv.ParseInt(fields[2], 10, 64)
					if err != nil {
						return nil, fmt.Errorf("line %d: bad bgp asn %q", lineNo, fields[2])
					}
					config.bgp = &cliBGP{asn: asn}
				}
			}
			continue
		}

		switch {
		case iface != nil:
			parseInterfaceLine(iface, fields, strings.TrimSpace(line))
		case vlan != nil:
			if fields[0] == "name" && len(fields) > 1 {
				vlan.name = fields[1]
			}
		case acl != nil:
			entry, err := parseACLEntry(fields, int64(len(acl.entries)+1)*10)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if entry != nil {
				acl.entries = append(acl.entries, entry)
			}
		case config.bgp != nil:
			parseBGPLine(config.bgp, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return config, nil
}

func parseInterfaceLine(iface *cliInterface, fields []string, trimmed string) {
	switch fields[0] {
	case "description":
		iface.description = strings.TrimSpace(strings.TrimPrefix(trimmed, "description"))
	case "mtu":
		if len(fields) > 1 {
			if mtu, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
				iface.mtu = mtu
			}
		}
	case "shutdown":
		iface.shutdown = true
	case "no":
		if len(fields) > 1 && fields[1] == "shutdown" {
			iface.shutdown = false
		}
	case "switchport":
		// switchport access vlan N
		if len(fields) >= 4 && fields[1] == "access" && fields[2] == "vlan" {
			if id, err := strconv.ParseInt(fields[3], 10, 64); err == nil {
				iface.accessVLAN = id
			}
		}
	case "ip":
		// ip access-group NAME in|out
		if len(fields) >= 4 && fields[1] == "access-group" {
			switch fields[3] {
			case "in":
				iface.ingressACL = fields[2]
			case "out":
				iface.egressACL = fields[2]
			}
		}
	}
}

// parseACLEntry handles "permit tcp any host 10.0.0.5 eq 22" and its
// variants, with or without a leading sequence number. Lines that are not
// rules (remarks and the like) are skipped.
func parseACLEntry(fields []string, autoSeq int64) (*cliACLEntry, error) {
	entry := &cliACLEntry{seq: autoSeq}

	if seq, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
		entry.seq = seq
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return nil, nil
	}
	if fields[0] != "permit" && fields[0] != "deny" {
		return nil, nil
	}
	entry.action = fields[0]
	fields = fields[1:]
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s rule without a protocol", entry.action)
	}
	entry.protocol = fields[0]
	fields = fields[1:]

	var err error
	entry.source, fields, err = consumeAddr(fields)
	if err != nil {
		return nil, err
	}
	entry.dest, fields, err = consumeAddr(fields)
	if err != nil {
		return nil, err
	}
	if len(fields) >= 2 && fields[0] == "eq" {
		if port, perr := strconv.ParseInt(fields[1], 10, 64); perr == nil {
			entry.destPort = port
		}
	}
	return entry, nil
}

// consumeAddr reads one address spec: "any", "host A.B.C.D", or an
// address/wildcard pair.
func consumeAddr(fields []string) (string, []string, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("rule truncated before address")
	}
	switch fields[0] {
	case "any":
		return "any", fields[1:], nil
	case "host":
		if len(fields) < 2 {
			return "", nil, fmt.Errorf("host without an address")
		}
		return fields[1] + "/32", fields[2:], nil
	default:
		if len(fields) >= 2 && strings.Count(fields[1], ".") == 3 {
			return fields[0] + " " + fields[1], fields[2:], nil
		}
		return fields[0], fields[1:], nil
	}
}

func parseBGPLine(bgp *cliBGP, fields []string) {
	switch fields[0] {
	case "bgp":
		if len(fields) >= 3 && fields[1] == "router-id" {
			bgp.routerID = fields[2]
		}
	case "neighbor":
		if len(fields) >= 4 && fields[2] == "remote-as" {
			if asn, err := strconv.ParseInt(fields[3], 10, 64); err == nil {
				bgp.neighbors = append(bgp.neighbors, &cliNeighbor{addr: fields[1], remoteAS: asn})
			}
		}
	}
}

// tree shapes the parsed capture into the vendor-neutral layout.
func (c *cliConfig) tree() *domain.Tree {
	root := domain.NewTree()

	device := domain.NewTree()
	if c.hostname != "" {
		device.Set("hostname", c.hostname)
	}
	if c.version != "" {
		device.Set("software-version", c.version)
	}
	root.Set("device", device)

	if len(c.interfaces) > 0 {
		list := make([]any, 0, len(c.interfaces))
		for _, iface := range c.interfaces {
			list = append(list, iface.tree())
		}
		root.Set("openconfig-interfaces:interfaces", treeWith("interface", list))
	}

	if len(c.vlans) > 0 {
		list := make([]any, 0, len(c.vlans))
		for _, vlan := range c.vlans {
			config := domain.NewTree()
			config.Set("vlan-id", vlan.id)
			if vlan.name != "" {
				config.Set("name", vlan.name)
			}
			entry := domain.NewTree()
			entry.Set("vlan-id", vlan.id)
			entry.Set("config", config)
			list = append(list, entry)
		}
		root.Set("openconfig-vlan:vlans", treeWith("vlan", list))
	}

	if len(c.acls) > 0 {
		list := make([]any, 0, len(c.acls))
		for _, acl := range c.acls {
			list = append(list, acl.tree())
		}
		root.Set("openconfig-acl:acl", treeWith("acl-sets", treeWith("acl-set", list)))
	}

	if c.bgp != nil {
		root.Set("openconfig-network-instance:network-instances",
			treeWith("network-instance", []any{c.bgp.tree()}))
	}

	return root
}

func (i *cliInterface) tree() *domain.Tree {
	config := domain.NewTree()
	config.Set("name", i.name)
	if i.description != "" {
		config.Set("description", i.description)
	}
	if i.mtu > 0 {
		config.Set("mtu", i.mtu)
	}
	config.Set("enabled", !i.shutdown)

	entry := domain.NewTree()
	entry.Set("name", i.name)
	entry.Set("config", config)

	if i.accessVLAN > 0 {
		vlanConfig := domain.NewTree()
		vlanConfig.Set("interface-mode", "ACCESS")
		vlanConfig.Set("access-vlan", i.accessVLAN)
		entry.Set("openconfig-vlan:switched-vlan", treeWith("config", vlanConfig))
	}

	if i.ingressACL != "" || i.egressACL != "" {
		applied := domain.NewTree()
		if i.ingressACL != "" {
			applied.Set("ingress-acl-sets", treeWith("ingress-acl-set", []any{aclRef(i.ingressACL)}))
		}
		if i.egressACL != "" {
			applied.Set("egress-acl-sets", treeWith("egress-acl-set", []any{aclRef(i.egressACL)}))
		}
		entry.Set("openconfig-acl:acl", applied)
	}

	return entry
}

func aclRef(name string) *domain.Tree {
	ref := domain.NewTree()
	ref.Set("set-name", name)
	ref.Set("config", treeWith("set-name", name))
	return ref
}

func (a *cliACL) tree() *domain.Tree {
	config := domain.NewTree()
	config.Set("name", a.name)
	config.Set("type", "ACL_IPV4")

	entries := make([]any, 0, len(a.entries))
	for _, e := range a.entries {
		entries = append(entries, e.tree())
	}

	entry := domain.NewTree()
	entry.Set("name", a.name)
	entry.Set("config", config)
	if len(entries) > 0 {
		entry.Set("acl-entries", treeWith("acl-entry", entries))
	}
	return entry
}

func (e *cliACLEntry) tree() *domain.Tree {
	action := "ACCEPT"
	if e.action == "deny" {
		action = "REJECT"
	}

	ipv4 := domain.NewTree()
	ipv4.Set("protocol", e.protocol)
	ipv4.Set("source-address", e.source)
	ipv4.Set("destination-address", e.dest)

	transport := domain.NewTree()
	if e.destPort > 0 {
		transport.Set("destination-port", e.destPort)
	}

	entry := domain.NewTree()
	entry.Set("sequence-id", e.seq)
	entry.Set("config", treeWith("sequence-id", e.seq))
	entry.Set("ipv4", treeWith("config", ipv4))
	if transport.Len() > 0 {
		entry.Set("transport", treeWith("config", transport))
	}
	entry.Set("actions", treeWith("config", treeWith("forwarding-action", action)))
	return entry
}

func (b *cliBGP) tree() *domain.Tree {
	global := domain.NewTree()
	global.Set("as", b.asn)
	if b.routerID != "" {
		global.Set("router-id", b.routerID)
	}

	bgp := domain.NewTree()
	bgp.Set("global", treeWith("config", global))
	if len(b.neighbors) > 0 {
		list := make([]any, 0, len(b.neighbors))
		for _, n := range b.neighbors {
			config := domain.NewTree()
			config.Set("neighbor-address", n.addr)
			config.Set("peer-as", n.remoteAS)
			neighbor := domain.NewTree()
			neighbor.Set("neighbor-address", n.addr)
			neighbor.Set("config", config)
			list = append(list, neighbor)
		}
		bgp.Set("neighbors", treeWith("neighbor", list))
	}

	protocol := domain.NewTree()
	protocol.Set("identifier", "BGP")
	protocol.Set("name", "bgp")
	protocol.Set("bgp", bgp)

	instance := domain.NewTree()
	instance.Set("name", "default")
	instance.Set("protocols", treeWith("protocol", []any{protocol}))
	return instance
}

// treeWith builds a single-key tree.
func treeWith(key string, value any) *domain.Tree {
	t := domain.NewTree()
	t.Set(key, value)
	return t
}
