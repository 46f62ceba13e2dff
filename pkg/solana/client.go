package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"
)

const (
	// todo: we can retrieve these from the Syscall account
	//       but they're unlikely to change.
	ticksPerSec  = 160
	ticksPerSlot = 64
	slotsPerSec  = ticksPerSec / ticksPerSlot

	// PollRate is the rate at which signature statuses should be polled at.
	PollRate = (time.Second / slotsPerSec) / 2

	// Poll rate is ~2x the slot rate, and we want to wait ~150 slots before
	// declaring a submitted transaction lost.
	confirmationPollLimit = 2 * 150

	// submitMaxRetries bounds how many times the RPC node rebroadcasts a
	// submitted transaction to the leader. This is the transport-level retry
	// budget; callers observe a single outcome.
	submitMaxRetries = 5

	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005

	invalidParamCode = -32602
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

var (
	ErrNoAccountInfo       = errors.New("no account info")
	ErrSignatureNotFound   = errors.New("signature not found")
	ErrNoBalance           = errors.New("no balance")
	ErrBlockhashExpired    = errors.New("blockhash expired before confirmation")
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmation")
)

// AccountInfo contains the Solana account information (not to be confused
// with a TokenAccount).
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// SignatureStatus is the confirmation state of a submitted transaction.
type SignatureStatus struct {
	Slot        uint64
	ErrorResult *TransactionError

	// Confirmations will be nil if the transaction has been rooted.
	Confirmations      *int
	ConfirmationStatus string
}

func (s SignatureStatus) Confirmed() bool {
	if s.Finalized() {
		return true
	}

	if s.ConfirmationStatus == confirmationStatusConfirmed {
		return true
	}

	return *s.Confirmations >= 1
}

func (s SignatureStatus) Finalized() bool {
	return s.Confirmations == nil || s.ConfirmationStatus == confirmationStatusFinalized
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error)
	GetBalance(account ed25519.PublicKey) (uint64, error)
	GetLatestBlockhash(commitment Commitment) (Blockhash, uint64, error)
	GetBlockHeight(commitment Commitment) (uint64, error)
	GetSignatureStatuses(sigs []Signature) ([]*SignatureStatus, error)
	SubmitTransaction(txn Transaction, commitment Commitment) (Signature, error)
	WaitForConfirmation(sig Signature, lastValidBlockHeight uint64) (*SignatureStatus, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

type rpcResponse struct {
	Context struct {
		Slot int64 `json:"slot"`
	} `json:"context"`
	Value interface{} `json:"value"`
}

type client struct {
	log *logrus.Entry
	rpc jsonrpc.RPCClient
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log: logrus.StandardLogger().WithField("type", "solana/client"),
		rpc: jsonrpc.NewClientWithOpts(endpoint, opts),
	}
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	return retry.Do(
		func() error {
			err := c.rpc.CallFor(out, method, params...)
			if err == nil {
				return nil
			}

			return c.handleRPCError(method, err)
		},
		retry.RetryIf(func(err error) bool {
			return err == errRateLimited || err == errServiceError
		}),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *client) handleRPCError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		return errServiceError
	}

	return err
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (accountInfo AccountInfo, err error) {
	type rpcResponse struct {
		Value *struct {
			Lamports   uint64   `json:"lamports"`
			Owner      string   `json:"owner"`
			Data       []string `json:"data"`
			Executable bool     `json:"executable"`
		} `json:"value"`
	}

	rpcConfig := struct {
		Commitment Commitment `json:"commitment"`
		Encoding   string     `json:"encoding"`
	}{
		Commitment: commitment,
		Encoding:   "base64",
	}

	var resp rpcResponse
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), rpcConfig); err != nil {
		return accountInfo, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Value == nil {
		return accountInfo, ErrNoAccountInfo
	}

	accountInfo.Owner, err = base58.Decode(resp.Value.Owner)
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base58 encoded owner")
	}

	accountInfo.Data, err = base64.StdEncoding.DecodeString(resp.Value.Data[0])
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base64 encoded data")
	}

	accountInfo.Lamports = resp.Value.Lamports
	accountInfo.Executable = resp.Value.Executable

	return accountInfo, nil
}

func (c *client) GetBalance(account ed25519.PublicKey) (uint64, error) {
	var resp rpcResponse
	if err := c.call(&resp, "getBalance", base58.Encode(account), CommitmentConfirmed); err != nil {
		jsonRPCErr, ok := err.(*jsonrpc.RPCError)
		if ok && jsonRPCErr.Code == invalidParamCode {
			return 0, ErrNoBalance
		}

		return 0, errors.Wrap(err, "getBalance() failed to send request")
	}

	if balance, ok := resp.Value.(float64); ok {
		return uint64(balance), nil
	}

	return 0, errors.Errorf("invalid value in response")
}

// GetLatestBlockhash returns the latest blockhash along with the last block
// height at which the blockhash remains valid for submission.
func (c *client) GetLatestBlockhash(commitment Commitment) (Blockhash, uint64, error) {
	type response struct {
		Value struct {
			Blockhash            string `json:"blockhash"`
			LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
		} `json:"value"`
	}

	var hash Blockhash
	var resp response
	if err := c.call(&resp, "getLatestBlockhash", []interface{}{commitment}); err != nil {
		return hash, 0, errors.Wrap(err, "getLatestBlockhash() failed to send request")
	}

	hashBytes, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, 0, errors.Wrap(err, "invalid base58 encoded hash in response")
	}

	copy(hash[:], hashBytes)

	return hash, resp.Value.LastValidBlockHeight, nil
}

func (c *client) GetBlockHeight(commitment Commitment) (uint64, error) {
	var height uint64
	if err := c.call(&height, "getBlockHeight", []interface{}{commitment}); err != nil {
		return 0, errors.Wrap(err, "getBlockHeight() failed to send request")
	}

	return height, nil
}

// SubmitTransaction broadcasts a signed transaction. The RPC node retries
// delivery to the leader up to submitMaxRetries times; no retry exists above
// that. A preflight execution failure surfaces as a *TransactionError.
func (c *client) SubmitTransaction(txn Transaction, commitment Commitment) (Signature, error) {
	sig := txn.Signatures[0]
	txnBytes := txn.Marshal()

	config := struct {
		SkipPreflight       bool   `json:"skipPreflight"`
		PreflightCommitment string `json:"preflightCommitment"`
		MaxRetries          uint   `json:"maxRetries"`
	}{
		SkipPreflight:       false,
		PreflightCommitment: commitment.Commitment,
		MaxRetries:          submitMaxRetries,
	}

	var sigStr string
	err := c.call(&sigStr, "sendTransaction", base58.Encode(txnBytes), config)
	if err != nil {
		jsonRPCErr, ok := err.(*jsonrpc.RPCError)
		if !ok {
			return sig, errors.Wrap(err, "sendTransaction() failed to send request")
		}

		txResult, parseErr := ParseRPCError(jsonRPCErr)
		if parseErr != nil || txResult == nil {
			return sig, err
		}

		return sig, txResult
	}

	return sig, nil
}

func (c *client) GetSignatureStatuses(sigs []Signature) ([]*SignatureStatus, error) {
	b58Sigs := make([]string, len(sigs))
	for i := range sigs {
		b58Sigs[i] = base58.Encode(sigs[i][:])
	}

	req := struct {
		SearchTransactionHistory bool `json:"searchTransactionHistory"`
	}{
		SearchTransactionHistory: true,
	}

	type signatureStatus struct {
		Slot               uint64          `json:"slot"`
		Confirmations      *int            `json:"confirmations"`
		ConfirmationStatus string          `json:"confirmationStatus"`
		Err                json.RawMessage `json:"err"`
	}

	type rpcResp struct {
		Context struct {
			Slot int `json:"slot"`
		} `json:"context"`
		Value []*signatureStatus `json:"value"`
	}

	var resp rpcResp
	if err := c.call(&resp, "getSignatureStatuses", b58Sigs, req); err != nil {
		return nil, err
	}

	statuses := make([]*SignatureStatus, len(sigs))
	for i, v := range resp.Value {
		if v == nil {
			continue
		}

		statuses[i] = &SignatureStatus{
			Slot:               v.Slot,
			Confirmations:      v.Confirmations,
			ConfirmationStatus: v.ConfirmationStatus,
		}

		if len(v.Err) > 0 {
			var txError interface{}
			if err := json.Unmarshal(v.Err, &txError); err != nil {
				return nil, errors.Wrap(err, "failed to parse transaction result")
			}

			parsed, err := ParseTransactionError(txError)
			if err != nil {
				return nil, errors.Wrap(err, "failed to parse transaction result")
			}
			statuses[i].ErrorResult = parsed
		}
	}

	return statuses, nil
}

// WaitForConfirmation polls the signature status until the transaction is
// confirmed, reports an execution error, or the blockhash it was built
// against expires. Execution errors are reported inside the returned status,
// not as an error.
func (c *client) WaitForConfirmation(sig Signature, lastValidBlockHeight uint64) (*SignatureStatus, error) {
	var status *SignatureStatus
	errNotYetConfirmed := errors.New("confirmations not reached")

	err := retry.Do(
		func() error {
			statuses, err := c.GetSignatureStatuses([]Signature{sig})
			if err != nil {
				return retry.Unrecoverable(err)
			}

			s := statuses[0]
			if s == nil {
				// The cluster hasn't seen the signature. Once the network
				// passes lastValidBlockHeight the transaction can no longer
				// land and the wait is over.
				height, err := c.GetBlockHeight(CommitmentConfirmed)
				if err != nil {
					return retry.Unrecoverable(err)
				}
				if height > lastValidBlockHeight {
					return retry.Unrecoverable(ErrBlockhashExpired)
				}
				return errNotYetConfirmed
			}

			if s.ErrorResult != nil || s.Confirmed() {
				status = s
				return nil
			}

			return errNotYetConfirmed
		},
		retry.RetryIf(func(err error) bool {
			return err == errNotYetConfirmed
		}),
		retry.Attempts(confirmationPollLimit),
		retry.Delay(PollRate),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if err == errNotYetConfirmed {
			return nil, ErrConfirmationTimeout
		}
		if errors.Is(err, ErrBlockhashExpired) {
			return nil, ErrBlockhashExpired
		}
		return nil, err
	}

	return status, nil
}
