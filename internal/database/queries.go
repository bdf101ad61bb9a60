package database

import (
	"database/sql"
	"time"
)

func (db *PgCourierRepository) CreateUser(params CreateUserParams) (User, error) {
	row := db.conn.QueryRow(
		"INSERT INTO users (username, email, password_hash, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, username, email, password_hash, created_at",
		params.Username,
		params.Email,
		params.PasswordHash,
		time.Now().UTC(),
	)

	return scanUser(row)
}

func (db *PgCourierRepository) UpdateUser(params UpdateUserParams) (User, error) {
	row := db.conn.QueryRow(
		"UPDATE users SET username = COALESCE($2, username), email = COALESCE($3, email) "+
			"WHERE id = $1 RETURNING id, username, email, password_hash, created_at",
		params.UserId,
		nullString(params.Username),
		nullString(params.Email),
	)

	return scanUser(row)
}

func (db *PgCourierRepository) GetUserById(userId int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users "+
			"WHERE id = $1 LIMIT 1",
		userId,
	)

	return scanUser(row)
}

func (db *PgCourierRepository) GetUserByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users "+
			"WHERE username = $1 LIMIT 1",
		username,
	)

	return scanUser(row)
}

func (db *PgCourierRepository) GetUserByUsernameOrEmail(username, email string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users "+
			"WHERE username = $1 OR email = $2 LIMIT 1",
		username,
		email,
	)

	return scanUser(row)
}

func (db *PgCourierRepository) ListUsers() ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT id, username, email, password_hash, created_at FROM users ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (db *PgCourierRepository) CreateChat(params CreateChatParams) (Chat, error) {
	row := db.conn.QueryRow(
		"INSERT INTO chats (name, owner_id, created_at) "+
			"VALUES ($1, $2, $3) RETURNING id, name, owner_id, created_at",
		params.Name,
		params.OwnerId,
		time.Now().UTC(),
	)

	return scanChat(row)
}

func (db *PgCourierRepository) GetChatById(chatId int) (Chat, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, owner_id, created_at FROM chats WHERE id = $1 LIMIT 1",
		chatId,
	)

	return scanChat(row)
}

func (db *PgCourierRepository) UpdateChatName(chatId int, name string) (Chat, error) {
	row := db.conn.QueryRow(
		"UPDATE chats SET name = $2 WHERE id = $1 RETURNING id, name, owner_id, created_at",
		chatId,
		name,
	)

	return scanChat(row)
}

// DeleteChat removes the chat row; membership rows and messages go with it
// via ON DELETE CASCADE.
func (db *PgCourierRepository) DeleteChat(chatId int) error {
	_, err := db.conn.Exec("DELETE FROM chats WHERE id = $1", chatId)
	return err
}

func (db *PgCourierRepository) ListChatsForUser(userId int) ([]Chat, error) {
	rows, err := db.conn.Query(
		"SELECT c.id, c.name, c.owner_id, c.created_at FROM chats c "+
			"JOIN chat_members m ON m.chat_id = c.id "+
			"WHERE m.user_id = $1 ORDER BY c.id",
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.Id, &c.Name, &c.OwnerId, &c.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}

	return chats, rows.Err()
}

func (db *PgCourierRepository) CreateMembership(userId, chatId int) error {
	_, err := db.conn.Exec(
		"INSERT INTO chat_members (user_id, chat_id) VALUES ($1, $2)",
		userId,
		chatId,
	)
	return err
}

func (db *PgCourierRepository) MembershipExists(userId, chatId int) (bool, error) {
	row := db.conn.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM chat_members WHERE user_id = $1 AND chat_id = $2)",
		userId,
		chatId,
	)

	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

func (db *PgCourierRepository) DeleteMembership(userId, chatId int) error {
	_, err := db.conn.Exec(
		"DELETE FROM chat_members WHERE user_id = $1 AND chat_id = $2",
		userId,
		chatId,
	)
	return err
}

func (db *PgCourierRepository) ListChatMembers(chatId int) ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT u.id, u.username, u.email, u.password_hash, u.created_at FROM users u "+
			"JOIN chat_members m ON m.user_id = u.id "+
			"WHERE m.chat_id = $1 ORDER BY u.id",
		chatId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (db *PgCourierRepository) CountChatMembers(chatId int) (int, error) {
	row := db.conn.QueryRow(
		"SELECT COUNT(*) FROM chat_members WHERE chat_id = $1",
		chatId,
	)

	var count int
	err := row.Scan(&count)
	return count, err
}

func (db *PgCourierRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	row := db.conn.QueryRow(
		"INSERT INTO messages (chat_id, user_id, text, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, chat_id, user_id, text, created_at",
		params.ChatId,
		params.UserId,
		params.Text,
		time.Now().UTC(),
	)

	return scanMessage(row)
}

func (db *PgCourierRepository) GetMessageById(messageId int) (Message, error) {
	row := db.conn.QueryRow(
		"SELECT id, chat_id, user_id, text, created_at FROM messages WHERE id = $1 LIMIT 1",
		messageId,
	)

	return scanMessage(row)
}

func (db *PgCourierRepository) UpdateMessageText(messageId int, text string) (Message, error) {
	row := db.conn.QueryRow(
		"UPDATE messages SET text = $2 WHERE id = $1 RETURNING id, chat_id, user_id, text, created_at",
		messageId,
		text,
	)

	return scanMessage(row)
}

func (db *PgCourierRepository) DeleteMessage(messageId int) error {
	_, err := db.conn.Exec("DELETE FROM messages WHERE id = $1", messageId)
	return err
}

func (db *PgCourierRepository) ListChatMessages(chatId int) ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT id, chat_id, user_id, text, created_at FROM messages "+
			"WHERE chat_id = $1 ORDER BY id",
		chatId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.Id, &m.ChatId, &m.UserId, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (db *PgCourierRepository) CountChatMessages(chatId int) (int, error) {
	row := db.conn.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE chat_id = $1",
		chatId,
	)

	var count int
	err := row.Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.Id, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func scanUsers(rows *sql.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func scanChat(row rowScanner) (Chat, error) {
	var c Chat
	err := row.Scan(&c.Id, &c.Name, &c.OwnerId, &c.CreatedAt)
	return c, err
}

func scanMessage(row rowScanner) (Message, error) {
	var m Message
	err := row.Scan(&m.Id, &m.ChatId, &m.UserId, &m.Text, &m.CreatedAt)
	return m, err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
