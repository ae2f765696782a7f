// Package models defines the persisted entities of the VPS engine.
package models

import "time"

// ResourceSpec describes the fixed-size plan of a VPS.
type ResourceSpec struct {
	RAMGB  int `json:"ram"`
	CPU    int `json:"cpu"`
	DiskGB int `json:"disk"`
}

// VPSRecord is the canonical record of one provisioned container.
// The key of the record is the runtime container id.
type VPSRecord struct {
	ContainerID     string       `json:"container_id"`
	Owner           string       `json:"owner"`
	Spec            ResourceSpec `json:"spec"`
	HTTPPort        int          `json:"http_port"`
	SSH             string       `json:"ssh"`
	AdditionalPorts []int        `json:"additional_ports"`
	CreatedAt       time.Time    `json:"created_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	Active          bool         `json:"active"`
	Suspended       bool         `json:"suspended"`
	// StopConfirmed records whether the runtime acknowledged the last stop.
	// Suspended is lifecycle truth; this one is runtime truth, kept for
	// operator reconciliation.
	StopConfirmed    bool     `json:"stop_confirmed"`
	PaidPlan         bool     `json:"paid_plan"`
	GiveawayGrant    bool     `json:"giveaway_vps"`
	SystemctlWorking bool     `json:"systemctl_working"`
	SharedWith       []string `json:"shared_with"`
}

// IsSharedWith reports whether the given user has co-management access.
// The owner is not part of SharedWith.
func (v *VPSRecord) IsSharedWith(userID string) bool {
	for _, id := range v.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// HasPort reports whether the port is already recorded for this VPS.
func (v *VPSRecord) HasPort(port int) bool {
	for _, p := range v.AdditionalPorts {
		if p == port {
			return true
		}
	}
	return false
}
