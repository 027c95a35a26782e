package models

// VPCInfo represents a VPC
type VPCInfo struct {
	VpcID     string
	Name      string
	CidrBlock string
	Ipv6Cidr  string
	State     string
	Tenancy   string
	IsDefault bool
}

// SubnetInfo represents a VPC subnet
type SubnetInfo struct {
	SubnetID         string
	VpcID            string
	Name             string
	CidrBlock        string
	AvailabilityZone string
	AvailableIPs     int32
}

// GatewayInfo represents an internet gateway and its VPC attachments
type GatewayInfo struct {
	GatewayID   string
	Name        string
	Attachments []string // "vpc-id (state)"
}
