package domain

import "time"

type MachineStatus string

const (
	MachineConnected    MachineStatus = "connected"
	MachineDisconnected MachineStatus = "disconnected"
	MachineError        MachineStatus = "error"
)

type Machine struct {
	Name          string
	Host          string
	Status        MachineStatus
	AutoReconnect bool
	LastError     string
	ConnectedAt   time.Time
}

// MachineTotals summarizes one machine's session counts in the
// aggregated multi-machine view.
type MachineTotals struct {
	Active  int
	Waiting int
	Error   string
}
