package analysisRepository

const (
	queryCreateInsight = `
		INSERT INTO insights (id, user_id, type, content, data, created_at)
		VALUES (:id, :user_id, :type, :content, :data, :created_at)
	`

	queryGetInsightByID = `
		SELECT id, user_id, type, content, data, created_at
		FROM insights
		WHERE id = :id AND user_id = :user_id
	`

	queryGetInsightsByUserID = `
		SELECT id, user_id, type, content, data, created_at
		FROM insights
		WHERE user_id = :user_id
		ORDER BY created_at DESC
	`

	queryDeleteInsight = `
		DELETE FROM insights
		WHERE id = :id AND user_id = :user_id
	`

	queryCreateChatMessage = `
		INSERT INTO chat_messages (id, user_id, role, content, metadata, timestamp)
		VALUES (:id, :user_id, :role, :content, :metadata, :timestamp)
	`

	queryGetChatMessagesByUserID = `
		SELECT id, user_id, role, content, metadata, timestamp
		FROM chat_messages
		WHERE user_id = :user_id
		ORDER BY timestamp ASC
	`

	queryDeleteChatMessagesByUserID = `
		DELETE FROM chat_messages
		WHERE user_id = :user_id
	`
)
