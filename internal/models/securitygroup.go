package models

// SecurityGroupInfo represents a security group and its inbound rules
type SecurityGroupInfo struct {
	GroupID     string
	GroupName   string
	VpcID       string
	Description string
	Ingress     []string // "tcp:22 0.0.0.0/0"
}
