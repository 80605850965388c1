package financeRepository

const (
	queryCreateCategory = `
		INSERT INTO categories (
			id,
			user_id,
			name,
			type,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:name,
			:type,
			:created_at,
			:updated_at
		)
	`

	queryGetCategoryByID = `
		SELECT
			id,
			user_id,
			name,
			type,
			created_at,
			updated_at
		FROM categories
		WHERE id = :id AND user_id = :user_id
	`

	queryGetCategoryByNameAndType = `
		SELECT
			id,
			user_id,
			name,
			type,
			created_at,
			updated_at
		FROM categories
		WHERE user_id = :user_id AND name = :name AND type = :type
	`

	queryGetCategoriesByUserID = `
		SELECT
			id,
			user_id,
			name,
			type,
			created_at,
			updated_at
		FROM categories
		WHERE user_id = :user_id
		ORDER BY name ASC
	`

	queryUpdateCategory = `
		UPDATE categories
		SET
			name = :name,
			type = :type,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	queryDeleteCategory = `
		DELETE FROM categories
		WHERE id = :id AND user_id = :user_id
	`

	queryCreateTransaction = `
		INSERT INTO transactions (
			id,
			user_id,
			category_id,
			amount,
			raw_text,
			metadata,
			timestamp
		) VALUES (
			:id,
			:user_id,
			:category_id,
			:amount,
			:raw_text,
			:metadata,
			:timestamp
		)
	`

	queryGetTransactionByID = `
		SELECT
			id,
			user_id,
			category_id,
			amount,
			raw_text,
			metadata,
			timestamp
		FROM transactions
		WHERE id = :id AND user_id = :user_id
	`

	queryGetTransactionsByUserID = `
		SELECT
			id,
			user_id,
			category_id,
			amount,
			raw_text,
			metadata,
			timestamp
		FROM transactions
		WHERE user_id = :user_id
		ORDER BY timestamp DESC
	`

	queryDeleteTransaction = `
		DELETE FROM transactions
		WHERE id = :id AND user_id = :user_id
	`

	queryGetCategoryTotalsSince = `
		SELECT
			COALESCE(c.name, 'Sem categoria') AS name,
			COALESCE(c.type, 'expense') AS type,
			SUM(t.amount) AS total,
			COUNT(*) AS count
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = :user_id AND t.timestamp >= :since
		GROUP BY COALESCE(c.name, 'Sem categoria'), COALESCE(c.type, 'expense')
		ORDER BY total DESC
	`

	queryCreateGoal = `
		INSERT INTO goals (
			id,
			user_id,
			name,
			target_amount,
			start_date,
			end_date,
			frequency,
			metadata,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:name,
			:target_amount,
			:start_date,
			:end_date,
			:frequency,
			:metadata,
			:created_at,
			:updated_at
		)
	`

	queryGetGoalByID = `
		SELECT
			id,
			user_id,
			name,
			target_amount,
			start_date,
			end_date,
			frequency,
			metadata,
			created_at,
			updated_at
		FROM goals
		WHERE id = :id AND user_id = :user_id
	`

	queryGetGoalsByUserID = `
		SELECT
			id,
			user_id,
			name,
			target_amount,
			start_date,
			end_date,
			frequency,
			metadata,
			created_at,
			updated_at
		FROM goals
		WHERE user_id = :user_id
		ORDER BY created_at DESC
	`

	queryUpdateGoal = `
		UPDATE goals
		SET
			name = :name,
			target_amount = :target_amount,
			start_date = :start_date,
			end_date = :end_date,
			frequency = :frequency,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	queryDeleteGoal = `
		DELETE FROM goals
		WHERE id = :id AND user_id = :user_id
	`
)
