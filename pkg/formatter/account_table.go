package formatter

import (
	"fmt"
	"io"

	"github.com/noelmcloughlin/cloud-cli/internal/models"
)

// PrintCallerIdentity prints the account and principal behind the credentials.
func PrintCallerIdentity(out io.Writer, id models.CallerIdentity, region string) {
	fmt.Fprintln(out, "## Caller Identity")
	w := newTableWriter(out)
	fmt.Fprintf(w, "Account:\t%s\n", id.Account)
	fmt.Fprintf(w, "Arn:\t%s\n", id.Arn)
	fmt.Fprintf(w, "UserId:\t%s\n", id.UserID)
	fmt.Fprintf(w, "Region:\t%s\n", region)
	w.Flush()
}

// PrintKeyPairs prints one line per key pair.
func PrintKeyPairs(out io.Writer, keys []models.KeyPairInfo) {
	for _, key := range keys {
		fmt.Fprintf(out, "KeyName: %s, KeyFingerprint: %s\n", key.KeyName, key.KeyFingerprint)
	}
}
