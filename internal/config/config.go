package config

import (
	"fmt"
	"net"
	"time"
)

// Package defaults for the environment built by the start action.
const (
	DefaultKeyPairName  = "ec2_user"
	DefaultAMI          = "ami-0fad7378adf284ce0"
	DefaultInstanceType = "t2.micro"
	DefaultVPCCIDR      = "10.0.0.0/16"
	DefaultGroupName    = "mygroupname"
	DefaultProjectName  = "assignment project"
	DefaultRegion       = "eu-west-1"
	DefaultTenancy      = "default"
	DefaultProtocol     = "tcp"
	DefaultIngressCIDR  = "0.0.0.0/0"
	DefaultIngressCIDR6 = "::/0"
	DefaultWaitTimeout  = 10 * time.Minute
)

// DefaultIngressPorts are opened on the security group: ssh, http, https.
var DefaultIngressPorts = []int32{22, 80, 443}

// DefaultUserData installs a LAMP stack on Amazon Linux 2.
const DefaultUserData = `
#!/bin/bash
yum update -y
amazon-linux-extras install -y lamp-mariadb10.2-php7.2 php7.2
yum install -y httpd mariadb-server
systemctl start httpd
systemctl enable httpd
usermod -a -G apache ec2-user
chown -R ec2-user:apache /var/www
chmod 2775 /var/www
find /var/www -type d -exec chmod 2775 {} \;
find /var/www -type f -exec chmod 0664 {} \;
echo "<?php phpinfo(); ?>" > /var/www/html/phpinfo.php
`

// Config holds everything the start, clean and info actions need.
type Config struct {
	KeyPairName  string
	AMI          string
	InstanceType string
	VPCCIDR      string
	SubnetCIDR   string // default: VPCCIDR
	GroupName    string
	ProjectName  string
	Region       string
	Tenancy      string
	UserData     string

	Protocol     string
	IngressPorts []int32
	IngressCIDR  string
	IngressCIDR6 string

	WaitTimeout time.Duration

	// Operational
	Debug   bool
	LogFile string
}

// Default returns a Config populated with the package defaults.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every empty field with its package default.
func (c *Config) ApplyDefaults() {
	if c.KeyPairName == "" {
		c.KeyPairName = DefaultKeyPairName
	}
	if c.AMI == "" {
		c.AMI = DefaultAMI
	}
	if c.InstanceType == "" {
		c.InstanceType = DefaultInstanceType
	}
	if c.VPCCIDR == "" {
		c.VPCCIDR = DefaultVPCCIDR
	}
	if c.SubnetCIDR == "" {
		c.SubnetCIDR = c.VPCCIDR
	}
	if c.GroupName == "" {
		c.GroupName = DefaultGroupName
	}
	if c.ProjectName == "" {
		c.ProjectName = DefaultProjectName
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Tenancy == "" {
		c.Tenancy = DefaultTenancy
	}
	if c.UserData == "" {
		c.UserData = DefaultUserData
	}
	if c.Protocol == "" {
		c.Protocol = DefaultProtocol
	}
	if len(c.IngressPorts) == 0 {
		c.IngressPorts = append([]int32(nil), DefaultIngressPorts...)
	}
	if c.IngressCIDR == "" {
		c.IngressCIDR = DefaultIngressCIDR
	}
	if c.IngressCIDR6 == "" {
		c.IngressCIDR6 = DefaultIngressCIDR6
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = DefaultWaitTimeout
	}
}

// Validate rejects values the EC2 API would refuse anyway, before any call
// is made.
func (c *Config) Validate() error {
	for name, cidr := range map[string]string{
		"vpc cidr":      c.VPCCIDR,
		"subnet cidr":   c.SubnetCIDR,
		"ingress cidr":  c.IngressCIDR,
		"ingress cidr6": c.IngressCIDR6,
	} {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, cidr, err)
		}
	}
	for _, port := range c.IngressPorts {
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid ingress port %d", port)
		}
	}
	if c.KeyPairName == "" {
		return fmt.Errorf("keypair name is required")
	}
	if c.AMI == "" {
		return fmt.Errorf("ami is required")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be positive")
	}
	return nil
}
