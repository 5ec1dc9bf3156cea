package cryptocore

import (
	"crypto/x509"
	"math/big"
)

// CertIssuer describes the contract the core requires of an external
// certificate authority: submit a CSR and receive back a certificate
// chain and serial number, revoke a previously issued certificate by
// serial, and read the current CA chain for verifying peers. No
// implementation lives in this module — issuance, revocation storage,
// and CRL/OCSP publication are an external collaborator's
// responsibility (§ Non-goals).
type CertIssuer interface {
	// IssueCertificate submits csr (a DER-encoded PKCS#10 certificate
	// signing request) for signing and returns the issued certificate
	// followed by its issuing chain (leaf first), plus the leaf's
	// serial number.
	IssueCertificate(csr []byte) (chain []*x509.Certificate, serial *big.Int, err error)

	// RevokeCertificate revokes a previously issued certificate by its
	// serial number. Revoking an already-revoked or unknown serial
	// returns a honeyerr NotFound-kind error.
	RevokeCertificate(serial *big.Int) error

	// ReadCAChain returns the current CA chain (root last) used to
	// validate certificates issued by this authority.
	ReadCAChain() ([]*x509.Certificate, error)
}
