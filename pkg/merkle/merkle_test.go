package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// createTestAddresses creates n sequential addresses 0x...01, 0x...02, ...
func createTestAddresses(n int) []common.Address {
	addrs := make([]common.Address, n)
	for i := 0; i < n; i++ {
		addrs[i] = common.BigToAddress(big.NewInt(int64(i + 1)))
	}
	return addrs
}

// hardhatAllowList is the allowlist shipped with the hardhat deploy scripts.
var hardhatAllowList = []string{
	"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	"0x0000000000000000000000000000000000000003",
	"0x0000000000000000000000000000000000000004",
	"0x0000000000000000000000000000000000000005",
	"0x0000000000000000000000000000000000000006",
}

// TestBuildMerkleTree tests merkle tree construction with various numbers of addresses
func TestBuildMerkleTree(t *testing.T) {
	testCases := []struct {
		name     string
		numAddrs int
	}{
		{"Single address", 1},
		{"Two addresses", 2},
		{"Three addresses", 3},
		{"Four addresses (power of 2)", 4},
		{"Six addresses", 6},
		{"Seven addresses", 7},
		{"Eight addresses (power of 2)", 8},
		{"Fifteen addresses", 15},
		{"Sixteen addresses (power of 2)", 16},
	}

	for _, policy := range []OddNodePolicy{OddNodeDuplicate, OddNodePromote} {
		for _, tc := range testCases {
			t.Run(fmt.Sprintf("%s/%s", policy, tc.name), func(t *testing.T) {
				addrs := createTestAddresses(tc.numAddrs)
				tree, err := BuildMerkleTree(addrs, WithOddNodePolicy(policy))
				require.NoError(t, err)
				require.NotNil(t, tree)

				require.Equal(t, tc.numAddrs, tree.Len())
				require.NotEqual(t, [32]byte{}, tree.Root)

				for i, addr := range addrs {
					proof := tree.GenerateProof(addr)
					require.Equal(t, addr, proof.Address)
					require.Equal(t, tree.Leaves[i], proof.Leaf)
					require.True(t, tree.Verify(proof), "Proof for address %d should be valid", i)
					require.True(t, VerifyAddressProof(addr, proof.Proof, tree.Root))
				}
			})
		}
	}
}

// TestBuildMerkleTreeEmpty tests that building a tree from an empty allowlist fails
func TestBuildMerkleTreeEmpty(t *testing.T) {
	tree, err := BuildMerkleTree([]common.Address{})
	require.ErrorIs(t, err, ErrEmptyAllowlist)
	require.Nil(t, tree)
}

func TestBuildMerkleTreeUnknownPolicy(t *testing.T) {
	tree, err := BuildMerkleTree(createTestAddresses(2), WithOddNodePolicy("sideways"))
	require.Error(t, err)
	require.Nil(t, tree)
}

func TestBuildMerkleTreeFromHex(t *testing.T) {
	t.Run("Case insensitive", func(t *testing.T) {
		lower := make([]string, len(hardhatAllowList))
		for i, a := range hardhatAllowList {
			lower[i] = "0x" + common.Bytes2Hex(common.HexToAddress(a).Bytes())
		}

		mixed, err := BuildMerkleTreeFromHex(hardhatAllowList)
		require.NoError(t, err)
		lowered, err := BuildMerkleTreeFromHex(lower)
		require.NoError(t, err)
		require.Equal(t, mixed.Root, lowered.Root)
	})

	t.Run("Malformed entry aborts build", func(t *testing.T) {
		bad := append([]string{}, hardhatAllowList...)
		bad[3] = "0x1234"

		tree, err := BuildMerkleTreeFromHex(bad)
		require.ErrorIs(t, err, ErrInvalidAddress)
		require.Contains(t, err.Error(), "entry 3")
		require.Nil(t, tree)
	})

	t.Run("Non hex entry aborts build", func(t *testing.T) {
		tree, err := BuildMerkleTreeFromHex([]string{"0xzz9Fd6e51aad88F6F4ce6aB8827279cffFb92266"})
		require.ErrorIs(t, err, ErrInvalidAddress)
		require.Nil(t, tree)
	})
}

// TestGoldenRoots pins roots computed independently of this package.
func TestGoldenRoots(t *testing.T) {
	addrs := createTestAddresses(7)

	testCases := []struct {
		name   string
		addrs  []common.Address
		policy OddNodePolicy
		root   string
	}{
		{"A-F", addrs[:6], OddNodeDuplicate, "0x885becae284f6e5bc3691ed08d881d996f60e37351005636800ff8a720c543b7"},
		{"A-E,G", append(append([]common.Address{}, addrs[:5]...), addrs[6]), OddNodeDuplicate, "0x6dd8477871c67ab17db23d205f7fc368e7f05aca04234f17d7dd6d4eb01840d1"},
		{"A-C duplicate", addrs[:3], OddNodeDuplicate, "0x331c7169a612cf99fba1655017fdb3c3388771d779a94fde08ffb88efdaa075c"},
		{"A-C promote", addrs[:3], OddNodePromote, "0x344510bd0c324c3912b13373e89df42d1b50450e9764a454b2aa6e2968a4578a"},
		{"A", addrs[:1], OddNodeDuplicate, "0x1468288056310c82aa4c01a7e12a10f8111a0560e72b700555479031b86c357d"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := BuildMerkleTree(tc.addrs, WithOddNodePolicy(tc.policy))
			require.NoError(t, err)
			require.Equal(t, tc.root, tree.RootHash().Hex())
		})
	}
}

// TestHardhatAllowListRoots checks both odd node conventions against the
// allowlist used by the hardhat deploy scripts. The promote root is the one
// hardcoded in the airdrop contract tests.
func TestHardhatAllowListRoots(t *testing.T) {
	duplicated, err := BuildMerkleTreeFromHex(hardhatAllowList)
	require.NoError(t, err)
	require.Equal(t, "0xa4d9de35c8c0e6a983c08b04a6ee9d87a71f8435128e57447a3359baf7d6a0b3", duplicated.RootHash().Hex())

	promoted, err := BuildMerkleTreeFromHex(hardhatAllowList, WithOddNodePolicy(OddNodePromote))
	require.NoError(t, err)
	require.Equal(t, "0x99754cefd021c036abab5b3610791ede544baa906a4bcd7ed6cc35f9296f2c27", promoted.RootHash().Hex())

	for _, a := range hardhatAllowList {
		addr, err := ParseAddress(a)
		require.NoError(t, err)
		require.True(t, promoted.Verify(promoted.GenerateProof(addr)))
		require.True(t, duplicated.Verify(duplicated.GenerateProof(addr)))
	}
}

// TestSixAddressScenario: [A..F] -> R, proof(B) verifies against R but not
// against the root of [A..E, G].
func TestSixAddressScenario(t *testing.T) {
	addrs := createTestAddresses(7)
	b, g := addrs[1], addrs[6]

	tree, err := BuildMerkleTree(addrs[:6])
	require.NoError(t, err)

	replaced := append(append([]common.Address{}, addrs[:5]...), g)
	otherTree, err := BuildMerkleTree(replaced)
	require.NoError(t, err)
	require.NotEqual(t, tree.Root, otherTree.Root)

	proof := tree.GenerateProof(b)
	require.True(t, VerifyProof(HashAddress(b), proof.Proof, tree.Root))
	require.False(t, VerifyProof(HashAddress(b), proof.Proof, otherTree.Root))
}

// TestOddLengthScenario: in [A, B, C] the last leaf is paired with itself.
func TestOddLengthScenario(t *testing.T) {
	addrs := createTestAddresses(3)
	tree, err := BuildMerkleTree(addrs)
	require.NoError(t, err)
	require.Equal(t, 2, tree.Depth())

	c := addrs[2]
	proof := tree.GenerateProof(c)
	require.Len(t, proof.Proof, 2)
	require.Equal(t, HashAddress(c), proof.Proof[0], "C should be its own sibling")
	require.Equal(t, hashPair(HashAddress(addrs[0]), HashAddress(addrs[1])), proof.Proof[1])
	require.True(t, VerifyProof(HashAddress(c), proof.Proof, tree.Root))

	t.Run("Promote skips the missing sibling", func(t *testing.T) {
		promoted, err := BuildMerkleTree(addrs, WithOddNodePolicy(OddNodePromote))
		require.NoError(t, err)

		proof := promoted.GenerateProof(c)
		require.Len(t, proof.Proof, 1)
		require.True(t, promoted.Verify(proof))
	})
}

// TestSingleAddressScenario: the root of [A] is A's leaf and the proof is empty.
func TestSingleAddressScenario(t *testing.T) {
	a := createTestAddresses(1)[0]
	tree, err := BuildMerkleTree([]common.Address{a})
	require.NoError(t, err)

	require.Equal(t, HashAddress(a), tree.Root)
	require.Equal(t, 0, tree.Depth())

	proof := tree.GenerateProof(a)
	require.Empty(t, proof.Proof)
	require.True(t, VerifyProof(HashAddress(a), proof.Proof, tree.Root))

	outsider := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	require.False(t, tree.Verify(tree.GenerateProof(outsider)))
}

// TestMerkleProofVerification tests proof verification with valid and invalid cases
func TestMerkleProofVerification(t *testing.T) {
	addrs := createTestAddresses(4)
	tree, err := BuildMerkleTree(addrs)
	require.NoError(t, err)

	t.Run("Valid proof", func(t *testing.T) {
		proof := tree.GenerateProof(addrs[0])
		require.True(t, tree.Verify(proof))
	})

	t.Run("Invalid proof - wrong root", func(t *testing.T) {
		proof := tree.GenerateProof(addrs[0])
		invalidRoot := [32]byte{1, 2, 3, 4, 5}
		require.False(t, VerifyProof(proof.Leaf, proof.Proof, invalidRoot))
	})

	t.Run("Invalid proof - tampered leaf", func(t *testing.T) {
		proof := tree.GenerateProof(addrs[0])
		proof.Leaf[0] ^= 0xFF
		require.False(t, tree.Verify(proof))
	})

	t.Run("Invalid proof - proof for another address", func(t *testing.T) {
		proof := tree.GenerateProof(addrs[0])
		require.False(t, VerifyAddressProof(addrs[1], proof.Proof, tree.Root))
	})

	t.Run("Invalid proof - nil proof", func(t *testing.T) {
		require.False(t, tree.Verify(nil))
	})
}

// TestTamperedProofElements flips every byte of every proof element in turn.
func TestTamperedProofElements(t *testing.T) {
	addrs := createTestAddresses(9)
	tree, err := BuildMerkleTree(addrs)
	require.NoError(t, err)

	for _, addr := range addrs {
		proof := tree.GenerateProof(addr)
		for i := range proof.Proof {
			for j := 0; j < 32; j++ {
				tampered := make([][32]byte, len(proof.Proof))
				copy(tampered, proof.Proof)
				tampered[i][j] ^= 0x01
				require.False(t, VerifyProof(proof.Leaf, tampered, tree.Root), "element %d byte %d", i, j)
			}
		}
	}
}

// TestNonMemberProofs checks that addresses outside the allowlist never verify.
func TestNonMemberProofs(t *testing.T) {
	addrs := createTestAddresses(20)
	tree, err := BuildMerkleTree(addrs[:10])
	require.NoError(t, err)

	for _, outsider := range addrs[10:] {
		require.False(t, tree.Contains(outsider))
		proof := tree.GenerateProof(outsider)
		require.Empty(t, proof.Proof)
		require.False(t, tree.Verify(proof))

		// Borrowing a member's path does not help either
		borrowed := tree.GenerateProof(addrs[0])
		require.False(t, VerifyAddressProof(outsider, borrowed.Proof, tree.Root))
	}
}

// TestGenerateProofForIndex tests proof generation with valid and invalid indices
func TestGenerateProofForIndex(t *testing.T) {
	addrs := createTestAddresses(4)
	tree, err := BuildMerkleTree(addrs)
	require.NoError(t, err)

	t.Run("Valid index", func(t *testing.T) {
		proof, err := tree.GenerateProofForIndex(2)
		require.NoError(t, err)
		require.Equal(t, addrs[2], proof.Address)
		require.True(t, tree.Verify(proof))
	})

	t.Run("Negative index", func(t *testing.T) {
		proof, err := tree.GenerateProofForIndex(-1)
		require.Error(t, err)
		require.Nil(t, proof)
	})

	t.Run("Index out of bounds", func(t *testing.T) {
		proof, err := tree.GenerateProofForIndex(10)
		require.Error(t, err)
		require.Nil(t, proof)
	})
}

// TestHashAddress checks the leaf against go-ethereum's keccak256.
func TestHashAddress(t *testing.T) {
	addr := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	leaf := HashAddress(addr)
	require.Equal(t, crypto.Keccak256Hash(addr.Bytes()), common.Hash(leaf))
	require.Equal(t, "0xe9707d0e6171f728f7473c24cc0432a9b07eaaf1efed6a137a4a8c12c79552d9", common.Hash(leaf).Hex())
}

func TestHashPairIsOrderIndependent(t *testing.T) {
	a := HashAddress(createTestAddresses(1)[0])
	b := HashAddress(createTestAddresses(2)[1])

	require.Equal(t, hashPair(a, b), hashPair(b, a))
	require.Equal(t, crypto.Keccak256Hash(minMax(a, b)...), common.Hash(hashPair(a, b)))
}

func minMax(a, b [32]byte) [][]byte {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return [][]byte{a[:], b[:]}
}

// TestMerkleTreeDeterminism tests that the same list always produces the same tree
func TestMerkleTreeDeterminism(t *testing.T) {
	addrs := createTestAddresses(10)

	tree1, err := BuildMerkleTree(addrs)
	require.NoError(t, err)
	tree2, err := BuildMerkleTree(addrs)
	require.NoError(t, err)

	require.Equal(t, tree1.Root, tree2.Root)
	require.Equal(t, tree1.Leaves, tree2.Leaves)
}

// TestMerkleTreeSensitivity tests that any change to the list changes the root
func TestMerkleTreeSensitivity(t *testing.T) {
	addrs := createTestAddresses(11)
	base, err := BuildMerkleTree(addrs[:10])
	require.NoError(t, err)

	t.Run("Altered", func(t *testing.T) {
		altered := append([]common.Address{}, addrs[:10]...)
		altered[4] = addrs[10]
		tree, err := BuildMerkleTree(altered)
		require.NoError(t, err)
		require.NotEqual(t, base.Root, tree.Root)
	})

	t.Run("Added", func(t *testing.T) {
		tree, err := BuildMerkleTree(addrs[:11])
		require.NoError(t, err)
		require.NotEqual(t, base.Root, tree.Root)
	})

	t.Run("Removed", func(t *testing.T) {
		tree, err := BuildMerkleTree(addrs[:9])
		require.NoError(t, err)
		require.NotEqual(t, base.Root, tree.Root)
	})

	t.Run("Reordered", func(t *testing.T) {
		reversed := make([]common.Address, 10)
		for i := range reversed {
			reversed[i] = addrs[9-i]
		}
		tree, err := BuildMerkleTree(reversed)
		require.NoError(t, err)
		require.NotEqual(t, base.Root, tree.Root)
	})
}

// TestMerkleTreeDuplicates tests that duplicate entries are accepted
func TestMerkleTreeDuplicates(t *testing.T) {
	addrs := createTestAddresses(3)
	withDup := []common.Address{addrs[0], addrs[1], addrs[0], addrs[2]}

	tree, err := BuildMerkleTree(withDup)
	require.NoError(t, err)
	require.Equal(t, 4, tree.Len())
	require.Equal(t, tree.Leaves[0], tree.Leaves[2])

	for _, addr := range addrs {
		require.True(t, tree.Verify(tree.GenerateProof(addr)))
	}
}

// TestBuildDoesNotAliasInput ensures later edits to the input slice don't leak in
func TestBuildDoesNotAliasInput(t *testing.T) {
	addrs := createTestAddresses(4)
	tree, err := BuildMerkleTree(addrs)
	require.NoError(t, err)

	original := addrs[0]
	addrs[0] = common.HexToAddress("0x00000000000000000000000000000000000000aa")

	require.Equal(t, original, tree.Addresses()[0])
	require.True(t, tree.Contains(original))
}

// TestMerkleProofLength tests that proof length is logarithmic
func TestMerkleProofLength(t *testing.T) {
	testCases := []struct {
		numAddrs   int
		proofDepth int
	}{
		{1, 0},
		{2, 1},
		{4, 2},
		{8, 3},
		{16, 4},
		{100, 7},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d_addresses", tc.numAddrs), func(t *testing.T) {
			addrs := createTestAddresses(tc.numAddrs)
			tree, err := BuildMerkleTree(addrs)
			require.NoError(t, err)
			require.Equal(t, tc.proofDepth, tree.Depth())

			proof := tree.GenerateProof(addrs[0])
			require.Len(t, proof.Proof, tc.proofDepth)
		})
	}
}

// TestMerkleTreeLargeSet tests with allowlists in the low thousands
func TestMerkleTreeLargeSet(t *testing.T) {
	sizes := []int{500, 1000, 2049}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("Size_%d", size), func(t *testing.T) {
			addrs := createTestAddresses(size)
			tree, err := BuildMerkleTree(addrs)
			require.NoError(t, err)
			require.Equal(t, size, tree.Len())

			for _, idx := range []int{0, size / 4, size / 2, size - 1} {
				require.True(t, tree.Verify(tree.GenerateProof(addrs[idx])))
			}
		})
	}
}

// TestConcurrentProofGeneration exercises the read-only tree from many goroutines
func TestConcurrentProofGeneration(t *testing.T) {
	addrs := createTestAddresses(64)
	tree, err := BuildMerkleTree(addrs)
	require.NoError(t, err)

	var wg sync.WaitGroup
	failures := make(chan common.Address, len(addrs))
	for _, addr := range addrs {
		wg.Add(1)
		go func(addr common.Address) {
			defer wg.Done()
			if !tree.Verify(tree.GenerateProof(addr)) {
				failures <- addr
			}
		}(addr)
	}
	wg.Wait()
	close(failures)

	for addr := range failures {
		t.Errorf("proof for %s failed under concurrency", addr.Hex())
	}
}

func TestMerkleProofHex(t *testing.T) {
	tree, err := BuildMerkleTreeFromHex(hardhatAllowList)
	require.NoError(t, err)

	addr, err := ParseAddress(hardhatAllowList[1])
	require.NoError(t, err)
	proof := tree.GenerateProof(addr)

	hexProof := proof.Hex()
	require.Len(t, hexProof, len(proof.Proof))

	valid, err := VerifyHexProof(common.Hash(proof.Leaf).Hex(), hexProof, tree.RootHash().Hex())
	require.NoError(t, err)
	require.True(t, valid)
}

func TestErrorsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrInvalidAddress, ErrMalformedProof))
	require.False(t, errors.Is(ErrMalformedProof, ErrEmptyAllowlist))
}
