package sqlite

// Tables in the order they are cleared and filled.
var tables = []string{"seasons", "matches", "top_scorers", "knockout_rounds", "finals", "cross_season"}

const schema = `
CREATE TABLE IF NOT EXISTS seasons (
    id                       TEXT PRIMARY KEY,
    display_name             TEXT NOT NULL,
    competition              TEXT NOT NULL,
    manager                  TEXT NOT NULL,
    formation                TEXT NOT NULL,
    squad_core               TEXT NOT NULL,
    matches_played           INTEGER NOT NULL,
    wins                     INTEGER NOT NULL,
    draws                    INTEGER NOT NULL,
    losses                   INTEGER NOT NULL,
    goals_scored             INTEGER NOT NULL,
    goals_conceded           INTEGER NOT NULL,
    goal_difference          INTEGER NOT NULL,
    clean_sheets             INTEGER NOT NULL,
    goals_per_match          REAL NOT NULL,
    goals_conceded_per_match REAL NOT NULL,
    win_percentage           REAL NOT NULL,
    avg_possession           REAL
);

CREATE TABLE IF NOT EXISTS matches (
    season_id       TEXT NOT NULL REFERENCES seasons(id),
    seq             INTEGER NOT NULL,
    date            TEXT NOT NULL,
    opponent        TEXT NOT NULL,
    home_away       TEXT NOT NULL,
    score           TEXT NOT NULL,
    goals_scored    INTEGER NOT NULL,
    goals_conceded  INTEGER NOT NULL,
    result          TEXT NOT NULL,
    stage           TEXT NOT NULL,
    scorers         TEXT NOT NULL,
    possession      INTEGER,
    shots           INTEGER,
    shots_on_target INTEGER,
    extra_time      INTEGER NOT NULL,
    PRIMARY KEY (season_id, seq)
);

CREATE TABLE IF NOT EXISTS top_scorers (
    season_id          TEXT NOT NULL REFERENCES seasons(id),
    seq                INTEGER NOT NULL,
    name               TEXT NOT NULL,
    goals              INTEGER NOT NULL,
    assists            INTEGER NOT NULL,
    minutes            INTEGER NOT NULL,
    contribution_share REAL NOT NULL,
    PRIMARY KEY (season_id, seq)
);

CREATE TABLE IF NOT EXISTS knockout_rounds (
    season_id        TEXT NOT NULL REFERENCES seasons(id),
    seq              INTEGER NOT NULL,
    round            TEXT NOT NULL,
    opponent         TEXT NOT NULL,
    leg1_score       TEXT,
    leg1_venue       TEXT,
    leg2_score       TEXT,
    leg2_venue       TEXT,
    aggregate        TEXT NOT NULL,
    key_contributors TEXT NOT NULL,
    detail           TEXT NOT NULL,
    note             TEXT NOT NULL,
    venue            TEXT NOT NULL,
    score            TEXT NOT NULL,
    PRIMARY KEY (season_id, seq)
);

CREATE TABLE IF NOT EXISTS finals (
    season_id  TEXT PRIMARY KEY REFERENCES seasons(id),
    opponent   TEXT NOT NULL,
    venue      TEXT NOT NULL,
    date       TEXT NOT NULL,
    score      TEXT NOT NULL,
    extra_time INTEGER NOT NULL,
    scorers    TEXT NOT NULL,
    attendance INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cross_season (
    season_id                TEXT PRIMARY KEY,
    display_name             TEXT NOT NULL,
    goals_per_match          REAL NOT NULL,
    goals_conceded_per_match REAL NOT NULL,
    goal_difference          INTEGER NOT NULL,
    win_percentage           REAL NOT NULL,
    clean_sheets             INTEGER NOT NULL,
    avg_possession           REAL,
    top_scorer               TEXT NOT NULL,
    top_scorer_goals         INTEGER NOT NULL,
    top_scorer_dependency    REAL NOT NULL,
    dominance_index          REAL NOT NULL
);
`
