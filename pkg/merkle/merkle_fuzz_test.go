package merkle

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func FuzzParseProofBytes(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, 32))
	f.Add(make([]byte, 33))
	f.Add(make([]byte, 96))

	f.Fuzz(func(t *testing.T, packed []byte) {
		proof, err := ParseProofBytes(packed)
		if len(packed)%32 != 0 {
			require.ErrorIs(t, err, ErrMalformedProof)
			return
		}
		require.NoError(t, err)
		require.Len(t, proof, len(packed)/32)

		repacked := make([]byte, 0, len(packed))
		for _, p := range proof {
			repacked = append(repacked, p[:]...)
		}
		require.True(t, bytes.Equal(packed, repacked))
	})
}

func FuzzParseHashRoundTrip(f *testing.F) {
	f.Add("")
	f.Add("0x")
	f.Add("0x1234")
	f.Add("0xa4d9de35c8c0e6a983c08b04a6ee9d87a71f8435128e57447a3359baf7d6a0b3")
	f.Add("A4D9DE35C8C0E6A983C08B04A6EE9D87A71F8435128E57447A3359BAF7D6A0B3")

	f.Fuzz(func(t *testing.T, s string) {
		h, err := ParseHash(s)
		if err != nil {
			return
		}
		again, err := ParseHash(common.Hash(h).Hex())
		require.NoError(t, err)
		require.Equal(t, h, again)
	})
}

func FuzzEveryMemberProofVerifies(f *testing.F) {
	f.Add([]byte("seed"), uint8(1))
	f.Add([]byte("allowlist"), uint8(6))
	f.Add([]byte{}, uint8(33))

	f.Fuzz(func(t *testing.T, seed []byte, count uint8) {
		n := int(count)%64 + 1
		addrs := make([]common.Address, n)
		for i := range addrs {
			addrs[i] = common.BytesToAddress(crypto.Keccak256(seed, []byte{byte(i)})[:20])
		}
		outsider := common.BytesToAddress(crypto.Keccak256(seed, []byte("outsider"))[:20])

		for _, policy := range []OddNodePolicy{OddNodeDuplicate, OddNodePromote} {
			tree, err := BuildMerkleTree(addrs, WithOddNodePolicy(policy))
			require.NoError(t, err)

			for _, a := range addrs {
				proof := tree.GenerateProof(a)
				require.True(t, VerifyAddressProof(a, proof.Proof, tree.Root), "policy %s", policy)
			}
			if n > 1 {
				require.False(t, VerifyAddressProof(outsider, tree.GenerateProof(outsider).Proof, tree.Root))
			}
		}
	})
}
