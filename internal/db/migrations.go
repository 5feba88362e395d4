package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'tipo_pessoa') THEN
			CREATE TYPE tipo_pessoa AS ENUM ('PF', 'PJ');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'status_os') THEN
			CREATE TYPE status_os AS ENUM ('PENDENTE', 'EM_ANDAMENTO', 'CONCLUIDA', 'CANCELADA');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'status_empresa') THEN
			CREATE TYPE status_empresa AS ENUM ('ATIVA', 'INATIVA');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'status_ponto_coleta') THEN
			CREATE TYPE status_ponto_coleta AS ENUM ('ABERTO', 'FECHADO');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'status_catador') THEN
			CREATE TYPE status_catador AS ENUM ('ATIVO', 'INATIVO');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS solicitacoes_coleta (
		id SERIAL PRIMARY KEY,
		nome_solicitante VARCHAR(255) NOT NULL,
		tipo_pessoa tipo_pessoa NOT NULL,
		documento VARCHAR(18) NOT NULL,
		email VARCHAR(255) NOT NULL,
		whatsapp VARCHAR(20) NOT NULL,
		quantidade_itens INTEGER NOT NULL,
		tipo_material VARCHAR(50) NOT NULL DEFAULT 'OUTROS',
		endereco VARCHAR(500) NOT NULL,
		foto_url VARCHAR(500),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS empresas (
		id SERIAL PRIMARY KEY,
		nome VARCHAR(255) NOT NULL,
		cnpj VARCHAR(18) NOT NULL UNIQUE,
		endereco VARCHAR(500) NOT NULL,
		telefone VARCHAR(20) NOT NULL,
		email VARCHAR(255) NOT NULL,
		status status_empresa NOT NULL DEFAULT 'ATIVA',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS pontos_coleta (
		id SERIAL PRIMARY KEY,
		empresa_id INTEGER NOT NULL REFERENCES empresas(id) ON DELETE CASCADE,
		nome VARCHAR(255) NOT NULL,
		endereco VARCHAR(500) NOT NULL,
		horario_funcionamento VARCHAR(255) NOT NULL,
		telefone VARCHAR(20) NOT NULL,
		status status_ponto_coleta NOT NULL DEFAULT 'ABERTO',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS catadores (
		id SERIAL PRIMARY KEY,
		nome VARCHAR(255) NOT NULL,
		cpf VARCHAR(14) NOT NULL UNIQUE,
		telefone VARCHAR(20) NOT NULL,
		email VARCHAR(255),
		status status_catador NOT NULL DEFAULT 'ATIVO',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS ordens_servico (
		id SERIAL PRIMARY KEY,
		solicitacao_id INTEGER NOT NULL UNIQUE REFERENCES solicitacoes_coleta(id) ON DELETE CASCADE,
		numero_os VARCHAR(20) NOT NULL UNIQUE,
		status status_os NOT NULL DEFAULT 'PENDENTE',
		empresa_id INTEGER REFERENCES empresas(id) ON DELETE SET NULL,
		ponto_coleta_id INTEGER REFERENCES pontos_coleta(id) ON DELETE SET NULL,
		catador_id INTEGER REFERENCES catadores(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS catadores_empresas (
		catador_id INTEGER NOT NULL REFERENCES catadores(id) ON DELETE CASCADE,
		empresa_id INTEGER NOT NULL REFERENCES empresas(id) ON DELETE CASCADE,
		data_vinculo TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (catador_id, empresa_id)
	);`,
	`CREATE TABLE IF NOT EXISTS os_counters (
		ano INTEGER PRIMARY KEY,
		ultimo_numero INTEGER NOT NULL
	);`,
	// Seed counters from order numbers issued before the counter table
	// existed, so the sequence continues instead of restarting.
	`INSERT INTO os_counters (ano, ultimo_numero)
	SELECT split_part(numero_os, '-', 2)::int, MAX(split_part(numero_os, '-', 3)::int)
	FROM ordens_servico
	WHERE numero_os LIKE 'OS-%'
	GROUP BY split_part(numero_os, '-', 2)::int
	ON CONFLICT (ano) DO NOTHING;`,
	`CREATE INDEX IF NOT EXISTS idx_ordens_servico_numero_os ON ordens_servico (numero_os);`,
	`CREATE INDEX IF NOT EXISTS idx_ordens_servico_status ON ordens_servico (status);`,
	`CREATE INDEX IF NOT EXISTS idx_pontos_coleta_empresa_id ON pontos_coleta (empresa_id);`,
	`CREATE INDEX IF NOT EXISTS idx_catadores_empresas_empresa_id ON catadores_empresas (empresa_id);`,
}

// Migrate applies the schema statements in order. Statements are written to
// be re-runnable on an existing database.
func Migrate(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
