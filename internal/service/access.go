package service

import (
	"fmt"

	"courier/internal/apperrors"
	"courier/internal/database"
)

// Access checks run in a fixed order before any mutation: existence is
// settled by the resolve helpers, then membership, then ownership or
// authorship, then state invariants. A deny short-circuits the operation
// with no side effects.

func requireMember(db database.CourierRepository, chat database.Chat, actorId int) error {
	ok, err := db.MembershipExists(actorId, chat.Id)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return apperrors.NewNoPermission("view chat")
	}
	return nil
}

func checkChatOwner(chat database.Chat, actorId int) error {
	if chat.OwnerId != actorId {
		return apperrors.NewNoPermission("edit chat")
	}
	return nil
}

// checkManageMembers is the same ownership predicate as checkChatOwner but
// denies with the member-management action, so adding or removing users
// from someone else's chat reads as such.
func checkManageMembers(chat database.Chat, actorId int) error {
	if chat.OwnerId != actorId {
		return apperrors.NewNoPermission("edit chat members")
	}
	return nil
}

func checkMessageAuthor(message database.Message, actorId int) error {
	if message.UserId != actorId {
		return apperrors.NewNoPermission("edit message")
	}
	return nil
}

// checkRemovableMember guards the owner-is-always-a-member invariant.
func checkRemovableMember(chat database.Chat, target database.User) error {
	if chat.OwnerId == target.Id {
		return apperrors.NewInvalidState("owner of a chat cannot be removed")
	}
	return nil
}
