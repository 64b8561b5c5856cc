package storage

const (
	documentBySHAQuery = `
		SELECT id, source_file, sha256, collection, metadata, created_at
		FROM documents
		WHERE sha256 = $1 AND collection = $2
	`

	insertDocumentQuery = `
		INSERT INTO documents (source_file, sha256, collection, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	insertChunkQuery = `
		INSERT INTO chunks (document_id, chunk_index, content, embedding, token_count, source_file, line_start, line_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	searchChunksQuery = `
		SELECT
			c.id,
			c.content,
			c.source_file,
			c.line_start,
			c.line_end,
			c.chunk_index,
			1 - (c.embedding <=> $1) AS similarity
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE d.collection = $2
		ORDER BY c.embedding <=> $1, c.id ASC
		LIMIT $3
	`

	purgeCollectionQuery = "DELETE FROM documents WHERE collection = $1"

	collectionStatsQuery = `
		SELECT
			COUNT(DISTINCT d.id),
			COUNT(c.id)
		FROM documents d
		LEFT JOIN chunks c ON c.document_id = d.id
		WHERE d.collection = $1
	`

	upsertSessionQuery = `
		INSERT INTO chat_sessions (id, collection, mode, style)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			mode = EXCLUDED.mode,
			style = EXCLUDED.style,
			updated_at = NOW()
	`

	sessionByIDQuery = `
		SELECT id, collection, mode, style, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1
	`

	insertMessageQuery = `
		INSERT INTO chat_messages (session_id, role, content, citations)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	touchSessionQuery = "UPDATE chat_sessions SET updated_at = NOW() WHERE id = $1"

	recentMessagesQuery = `
		SELECT id, session_id, role, content, citations, created_at
		FROM (
			SELECT id, session_id, role, content, citations, created_at
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id ASC
	`

	listMessagesQuery = `
		SELECT id, session_id, role, content, citations, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY id ASC
	`

	countTurnsQuery = `
		SELECT COUNT(*)
		FROM chat_messages
		WHERE session_id = $1 AND role = 'assistant'
	`

	insertFeedbackQuery = `
		INSERT INTO answer_feedback (session_id, question, answer, verdict, comment, collection, mode, citations, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	feedbackSummaryQuery = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE verdict = 'positive'),
			COUNT(*) FILTER (WHERE verdict = 'negative')
		FROM answer_feedback
		WHERE ($1 = '' OR collection = $1)
	`

	embeddingDimensionQuery = `
		SELECT atttypmod
		FROM pg_attribute
		WHERE attrelid = 'chunks'::regclass AND attname = 'embedding'
	`
)
