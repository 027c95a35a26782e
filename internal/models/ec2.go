package models

import "time"

// InstanceInfo represents EC2 instance information
type InstanceInfo struct {
	InstanceID       string
	Name             string
	InstanceType     string
	State            string
	VpcID            string
	SubnetID         string
	PublicIP         string
	PrivateIP        string
	KeyName          string
	AvailabilityZone string
	LaunchTime       *time.Time
	HourlyPrice      float64
	PricingSource    string // "API", "Cache", or "N/A"
}
