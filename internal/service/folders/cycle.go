package folders

import (
	"context"
	"fmt"
)

// WouldCreateCycle reports whether reparenting folderID under
// candidateParentID would make the folder an ancestor of itself.
//
// The check walks parent pointers instead of trusting materialized
// paths, so it stays correct even if a stored path has drifted. maxSteps
// bounds the walk (callers pass the total folder count) so corrupted
// parent chains cannot loop it forever; an overlong chain is reported as
// an error, never as a legal move.
func WouldCreateCycle(ctx context.Context, folderID string, candidateParentID *string, parents ParentLookup, maxSteps int) (bool, error) {
	// Moving to root is always legal
	if candidateParentID == nil {
		return false, nil
	}

	// A folder cannot parent itself
	if *candidateParentID == folderID {
		return true, nil
	}

	currentID := *candidateParentID
	for steps := 0; steps <= maxSteps; steps++ {
		parent, err := parents.GetByID(ctx, currentID)
		if err != nil {
			return false, err
		}

		if parent.ParentID == nil {
			// Reached a root without meeting folderID
			return false, nil
		}

		if *parent.ParentID == folderID {
			return true, nil
		}

		currentID = *parent.ParentID
	}

	return false, fmt.Errorf("ancestry of folder %s exceeds %d links: parent chain is corrupted", *candidateParentID, maxSteps)
}
