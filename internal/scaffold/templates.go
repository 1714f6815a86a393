package scaffold

// generalTemplate applies to every file.
const generalTemplate = `# General Coding Standards

## Code Quality
- Write clean, maintainable, and self-documenting code
- Use meaningful names for variables, functions, and types
- Keep functions small and focused on one job

## Documentation
- Comment complex logic
- Write clear commit messages
- Document exported APIs

## Error Handling
- Handle errors where they occur or return them with context
- Log errors with enough detail to reproduce the problem

## About These Rules
These rules live in {{.RulesDir}} and are written for {{.Tool}}.
Run ` + "`ruleport --source {{.ToolName}}`" + ` to copy them to every other assistant.`

// goTemplate is scoped to Go sources.
const goTemplate = `# Go Standards

## Style
- Format with gofmt; imports grouped stdlib first
- Keep package names short, lower case, and singular
- Accept interfaces, return concrete types

## Errors
- Return errors as the last value and check them immediately
- Wrap with ` + "`fmt.Errorf(\"context: %w\", err)`" + `
- Compare with ` + "`errors.Is`" + ` and ` + "`errors.As`" + `, never by string

## Testing
- Table-driven tests with ` + "`t.Run`" + `
- Use ` + "`t.TempDir()`" + ` for file system fixtures

## Example
` + "```go" + `
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
` + "```"

// typescriptTemplate is scoped to TypeScript and TSX sources.
const typescriptTemplate = `# TypeScript/React Standards

## TypeScript Configuration
- Enable strict mode in tsconfig.json
- Use explicit types, avoid ` + "`any`" + `
- Prefer interfaces over types for object shapes

## React Best Practices
- Use functional components with hooks
- Keep components small and focused
- Share logic through custom hooks

## Naming Conventions
- Variables and functions: camelCase
- Components: PascalCase
- Constants: UPPER_SNAKE_CASE

## Example Component
` + "```typescript" + `
interface UserCardProps {
  name: string;
  email: string;
  onEdit?: () => void;
}

export function UserCard({ name, email, onEdit }: UserCardProps) {
  return (
    <div className="user-card">
      <h2>{name}</h2>
      <p>{email}</p>
      {onEdit && <button onClick={onEdit}>Edit</button>}
    </div>
  );
}
` + "```"
