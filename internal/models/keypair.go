package models

// KeyPairInfo represents an EC2 key pair
type KeyPairInfo struct {
	KeyName        string
	KeyFingerprint string
	KeyPairID      string
	KeyType        string
}

// CallerIdentity is the account and principal the credentials resolve to
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}
