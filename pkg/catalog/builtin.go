package catalog

// Builtin node types. The catalog proper is external reference data;
// this set exists so the CLI, HTTP surface and tests operate against
// realistic network-automation definitions.
const (
	TypeStart        = "core.start"
	TypeCommand      = "net.command"
	TypePingSweep    = "net.ping_sweep"
	TypeSSHCommand   = "net.ssh_command"
	TypeHTTPCheck    = "net.http_check"
	TypeSNMPGet      = "net.snmp_get"
	TypePortScan     = "net.port_scan"
	TypeConfigBackup = "net.config_backup"
	TypeDBWrite      = "db.write"
	TypeNotify       = "notify.send"
)

func triggerIn() Port {
	return Port{ID: "trigger", Kind: KindTrigger, Type: TypeTrigger, Label: "Trigger", Required: true}
}

func successOut() Port {
	return Port{ID: "success", Kind: KindTrigger, Type: TypeTrigger, Label: "Success"}
}

func failureOut() Port {
	return Port{ID: "failure", Kind: KindTrigger, Type: TypeTrigger, Label: "Failure"}
}

// Builtin returns a registry with the reference network-automation
// node set.
func Builtin() *Registry {
	return NewRegistry(
		NodeDefinition{
			Type:  TypeStart,
			Label: "Start",
			Outputs: []Port{
				{ID: "trigger", Kind: KindTrigger, Type: TypeTrigger, Label: "Trigger"},
				{ID: "payload", Kind: KindData, Type: TypeObject, Label: "Trigger Payload"},
			},
			Platforms: []Platform{PlatformAny},
			Protocols: []Protocol{ProtocolAny},
		},
		NodeDefinition{
			Type:   TypeCommand,
			Label:  "Run Command",
			Inputs: []Port{triggerIn()},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "output", Kind: KindData, Type: TypeString, Label: "Output"},
				{ID: "exit_code", Kind: KindData, Type: TypeNumber, Label: "Exit Code"},
			},
			Platforms:  []Platform{PlatformAny},
			Protocols:  []Protocol{ProtocolSSH, ProtocolTelnet},
			Parameters: map[string]string{"command": "string", "timeout": "number"},
		},
		NodeDefinition{
			Type:   TypePingSweep,
			Label:  "Ping Sweep",
			Inputs: []Port{triggerIn()},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "alive", Kind: KindData, Type: "string[]", Label: "Alive Hosts"},
				{ID: "count", Kind: KindData, Type: TypeNumber, Label: "Alive Count"},
			},
			Platforms:  []Platform{PlatformAny},
			Protocols:  []Protocol{ProtocolICMP},
			Parameters: map[string]string{"network_range": "string", "timeout": "number"},
		},
		NodeDefinition{
			Type:  TypeSSHCommand,
			Label: "SSH Command",
			Inputs: []Port{
				triggerIn(),
				{ID: "hosts", Kind: KindData, Type: "string[]", Label: "Target Hosts"},
			},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "output", Kind: KindData, Type: TypeString, Label: "Output"},
				{ID: "exit_code", Kind: KindData, Type: TypeNumber, Label: "Exit Code"},
			},
			Platforms:  []Platform{PlatformLinux, PlatformIOS, PlatformJunos, PlatformEOS},
			Protocols:  []Protocol{ProtocolSSH},
			Parameters: map[string]string{"command": "string", "username": "string"},
		},
		NodeDefinition{
			Type:   TypeHTTPCheck,
			Label:  "HTTP Check",
			Inputs: []Port{triggerIn()},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "status", Kind: KindData, Type: TypeNumber, Label: "Status Code"},
				{ID: "body", Kind: KindData, Type: TypeString, Label: "Body"},
				{ID: "ok", Kind: KindData, Type: TypeBoolean, Label: "Healthy"},
			},
			Platforms:  []Platform{PlatformAny},
			Protocols:  []Protocol{ProtocolHTTP},
			Parameters: map[string]string{"url": "string", "expect_status": "number"},
		},
		NodeDefinition{
			Type:   TypeSNMPGet,
			Label:  "SNMP Get",
			Inputs: []Port{triggerIn()},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "values", Kind: KindData, Type: TypeObject, Label: "OID Values"},
			},
			Platforms:  []Platform{PlatformIOS, PlatformJunos, PlatformEOS},
			Protocols:  []Protocol{ProtocolSNMP},
			Parameters: map[string]string{"oids": "string", "community": "string"},
		},
		NodeDefinition{
			Type:   TypePortScan,
			Label:  "Port Scan",
			Inputs: []Port{triggerIn()},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "open_ports", Kind: KindData, Type: TypeObject, Label: "Open Ports"},
			},
			Platforms:  []Platform{PlatformAny},
			Protocols:  []Protocol{ProtocolAny},
			Parameters: map[string]string{"network_range": "string", "ports": "string"},
		},
		NodeDefinition{
			Type:   TypeConfigBackup,
			Label:  "Config Backup",
			Inputs: []Port{triggerIn()},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "config", Kind: KindData, Type: TypeString, Label: "Device Config"},
			},
			Platforms:  []Platform{PlatformIOS, PlatformJunos, PlatformEOS},
			Protocols:  []Protocol{ProtocolSSH},
			Parameters: map[string]string{"username": "string"},
		},
		NodeDefinition{
			Type:  TypeDBWrite,
			Label: "Database Write",
			Inputs: []Port{
				triggerIn(),
				{ID: "rows", Kind: KindData, Type: TypeObject, Label: "Rows", Required: true},
			},
			Outputs: []Port{
				successOut(), failureOut(),
				{ID: "written", Kind: KindData, Type: TypeNumber, Label: "Rows Written"},
			},
			Platforms:  []Platform{PlatformAny},
			Protocols:  []Protocol{ProtocolAny},
			Parameters: map[string]string{"table": "string", "key_fields": "string"},
		},
		NodeDefinition{
			Type:  TypeNotify,
			Label: "Send Notification",
			Inputs: []Port{
				triggerIn(),
				{ID: "message", Kind: KindData, Type: TypeString, Label: "Message", Required: true},
			},
			Outputs:    []Port{successOut(), failureOut()},
			Platforms:  []Platform{PlatformAny},
			Protocols:  []Protocol{ProtocolAny},
			Parameters: map[string]string{"channel": "string"},
		},
	)
}
