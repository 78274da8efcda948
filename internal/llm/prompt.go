package llm

// systemPrompt instructs the model to return strict JSON with the three
// summary fields.
const systemPrompt = `You are a senior software engineer. Your task is to analyze the provided repository files and produce a structured JSON summary.

IMPORTANT: Respond with ONLY valid JSON — no markdown fences, no extra text.

The JSON object MUST have exactly these keys:
  "summary"       — a concise 3-5 sentence overview of what the project does, its purpose, and its architecture.
  "technologies"  — a JSON array of strings listing languages, frameworks, libraries, and tools used.
  "structure"     — a brief description of the project layout and key modules.`

const userPromptPrefix = "Analyze the following repository files and return the JSON summary.\n\n"

const userPromptSuffix = "\n\nRespond with ONLY a valid JSON object. Do not wrap it in markdown code fences."
