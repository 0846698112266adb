package service

import (
	"fmt"
	"net/url"
)

const explorerBaseURL = "https://explorer.solana.com/tx/"

// ExplorerURL links a transaction signature on the block explorer. The
// mainnet cluster needs no query parameter.
func ExplorerURL(cluster, signature string) string {
	if cluster == "" || cluster == "mainnet-beta" {
		return explorerBaseURL + signature
	}
	return fmt.Sprintf("%s%s?cluster=%s", explorerBaseURL, signature, url.QueryEscape(cluster))
}
