package allowlist

import (
	"fmt"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/ethereum/go-ethereum/common"
)

// Allowlist is the ordered set of addresses eligible to claim. Order matters:
// it fixes the leaf order and therefore the merkle root.
type Allowlist struct {
	Addresses []common.Address
}

// New parses every entry strictly. The first malformed entry fails the whole
// list with merkle.ErrInvalidAddress; a bad allowlist cannot be partially trusted.
func New(entries []string) (*Allowlist, error) {
	addrs := make([]common.Address, 0, len(entries))
	for i, e := range entries {
		addr, err := merkle.ParseAddress(e)
		if err != nil {
			return nil, fmt.Errorf("allowlist entry %d: %w", i, err)
		}
		addrs = append(addrs, addr)
	}
	return &Allowlist{Addresses: addrs}, nil
}

// Len returns the number of entries, duplicates included.
func (a *Allowlist) Len() int {
	return len(a.Addresses)
}

// Contains reports whether addr is listed.
func (a *Allowlist) Contains(addr common.Address) bool {
	for _, candidate := range a.Addresses {
		if candidate == addr {
			return true
		}
	}
	return false
}

// Duplicates returns every address listed more than once, in first-seen order.
func (a *Allowlist) Duplicates() []common.Address {
	seen := make(map[common.Address]int, len(a.Addresses))
	dups := make([]common.Address, 0)
	for _, addr := range a.Addresses {
		seen[addr]++
		if seen[addr] == 2 {
			dups = append(dups, addr)
		}
	}
	return dups
}

// Hex returns the checksummed hex form of every entry.
func (a *Allowlist) Hex() []string {
	out := make([]string, len(a.Addresses))
	for i, addr := range a.Addresses {
		out[i] = addr.Hex()
	}
	return out
}

// Tree builds the merkle tree for this allowlist.
func (a *Allowlist) Tree(opts ...merkle.Option) (*merkle.MerkleTree, error) {
	return merkle.BuildMerkleTree(a.Addresses, opts...)
}

// Diff reports which addresses were added to and removed from old to get next.
// Any non-empty diff means a new root and a new deployment.
type Diff struct {
	Added   []common.Address
	Removed []common.Address
}

// Empty reports whether both lists contain the same set of addresses.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Compare returns the set difference between two allowlists. Ordering changes
// are not reported even though they change the root.
func Compare(old, next *Allowlist) *Diff {
	inOld := make(map[common.Address]struct{}, len(old.Addresses))
	for _, addr := range old.Addresses {
		inOld[addr] = struct{}{}
	}
	inNext := make(map[common.Address]struct{}, len(next.Addresses))
	for _, addr := range next.Addresses {
		inNext[addr] = struct{}{}
	}

	diff := &Diff{Added: []common.Address{}, Removed: []common.Address{}}
	for _, addr := range next.Addresses {
		if _, ok := inOld[addr]; !ok {
			diff.Added = append(diff.Added, addr)
			inOld[addr] = struct{}{}
		}
	}
	for _, addr := range old.Addresses {
		if _, ok := inNext[addr]; !ok {
			diff.Removed = append(diff.Removed, addr)
			inNext[addr] = struct{}{}
		}
	}
	return diff
}
