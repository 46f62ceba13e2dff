package stake

import (
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libra-stake/libra-bot/pkg/solana"
	"github.com/libra-stake/libra-bot/pkg/solana/staking"
	"github.com/libra-stake/libra-bot/pkg/wallet"
)

type fakeClient struct {
	solana.Client

	submitted           solana.Transaction
	blockhashCommitment solana.Commitment

	submitSig    solana.Signature
	submitErr    error
	confirmState *solana.SignatureStatus
	confirmErr   error
}

func (f *fakeClient) GetLatestBlockhash(commitment solana.Commitment) (solana.Blockhash, uint64, error) {
	f.blockhashCommitment = commitment

	var bh solana.Blockhash
	bh[0] = 1
	return bh, 1000, nil
}

func (f *fakeClient) SubmitTransaction(txn solana.Transaction, commitment solana.Commitment) (solana.Signature, error) {
	f.submitted = txn
	if f.submitErr != nil {
		return f.submitSig, f.submitErr
	}
	return txn.Signatures[0], nil
}

func (f *fakeClient) WaitForConfirmation(sig solana.Signature, lastValidBlockHeight uint64) (*solana.SignatureStatus, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.confirmState, nil
}

type serviceTestEnv struct {
	client  *fakeClient
	service *Service
	kp      *wallet.Keypair

	program ed25519.PublicKey
}

func newServiceTestEnv(t *testing.T) *serviceTestEnv {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	mint, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	contractTokenAccount, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	contractDataAccount, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	kp, err := wallet.Generate()
	require.NoError(t, err)

	client := &fakeClient{
		confirmState: &solana.SignatureStatus{
			ConfirmationStatus: "finalized",
		},
	}

	return &serviceTestEnv{
		client:  client,
		service: NewService(client, program, mint, contractTokenAccount, contractDataAccount, 6),
		kp:      kp,
		program: program,
	}
}

func TestStake_Success(t *testing.T) {
	env := newServiceTestEnv(t)

	success, txID, err := env.service.Stake(env.kp, staking.StakeTypeNormal, 100, 0)
	require.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, env.client.submitted.Signatures[0].Base58(), txID)
	assert.Equal(t, solana.CommitmentConfirmed, env.client.blockhashCommitment)

	decompiled, err := staking.DecompileStake(env.client.submitted.Message, 0, env.program)
	require.NoError(t, err)
	assert.EqualValues(t, env.kp.Public(), decompiled.User)
	assert.EqualValues(t, 100_000_000, decompiled.Quarks)

	// the user signs as payer
	assert.True(t, ed25519.Verify(
		env.kp.Public(),
		env.client.submitted.Message.Marshal(),
		env.client.submitted.Signatures[0][:],
	))
}

func TestUnstake_Success(t *testing.T) {
	env := newServiceTestEnv(t)

	success, txID, err := env.service.Unstake(env.kp)
	require.NoError(t, err)
	assert.True(t, success)
	assert.NotEmpty(t, txID)

	decompiled, err := staking.DecompileUnstake(env.client.submitted.Message, 0, env.program)
	require.NoError(t, err)
	assert.EqualValues(t, env.kp.Public(), decompiled.User)
}

func TestStake_PreflightRejected(t *testing.T) {
	env := newServiceTestEnv(t)
	env.client.submitErr = solana.NewTransactionError(solana.TransactionErrorInsufficientFundsForFee)

	success, txID, err := env.service.Stake(env.kp, staking.StakeTypeNormal, 100, 0)
	require.NoError(t, err)
	assert.False(t, success)
	assert.Empty(t, txID)
}

func TestStake_FailedOnChain(t *testing.T) {
	env := newServiceTestEnv(t)
	env.client.confirmState = &solana.SignatureStatus{
		ConfirmationStatus: "finalized",
		ErrorResult:        solana.NewTransactionError(solana.TransactionErrorInstructionError),
	}

	success, txID, err := env.service.Stake(env.kp, staking.StakeTypeNormal, 100, 0)
	require.NoError(t, err)
	assert.False(t, success)
	assert.Empty(t, txID)
}

func TestUnstake_FailedOnChain(t *testing.T) {
	env := newServiceTestEnv(t)
	env.client.confirmState = &solana.SignatureStatus{
		ConfirmationStatus: "finalized",
		ErrorResult:        solana.NewTransactionError(solana.TransactionErrorInstructionError),
	}

	success, txID, err := env.service.Unstake(env.kp)
	require.NoError(t, err)
	assert.False(t, success)
	assert.Empty(t, txID)
}

func TestStake_TransportError(t *testing.T) {
	env := newServiceTestEnv(t)
	env.client.submitErr = errors.New("rpc unreachable")

	success, txID, err := env.service.Stake(env.kp, staking.StakeTypeNormal, 100, 0)
	assert.Error(t, err)
	assert.False(t, success)
	assert.Empty(t, txID)
}

func TestStake_ConfirmationError(t *testing.T) {
	env := newServiceTestEnv(t)
	env.client.confirmErr = solana.ErrBlockhashExpired

	success, txID, err := env.service.Stake(env.kp, staking.StakeTypeNormal, 100, 0)
	assert.Error(t, err)
	assert.False(t, success)
	assert.Empty(t, txID)
}
