package advisor

import (
	"fmt"
	"strings"
)

// System prompts for the four advisory stages. Each conditions the model on
// a distinct professional role; the stage prompt then carries the task and
// the stage-1 listings report.

const searcherSystem = "You are an experienced technical recruiter with deep knowledge of the job market, " +
	"particularly in technology and data science. You identify high-quality postings, filter out spam, " +
	"and recognize the key skills and requirements in job descriptions. You report only what the provided " +
	"listings support; never invent listings, companies, or salaries."

const skillsSystem = "You are a career development coach and learning specialist with years of experience " +
	"as a technical trainer. You extract required skills from job descriptions, categorize and prioritize " +
	"them, and recommend specific learning resources with realistic timelines. Think step by step: extract, " +
	"categorize, prioritize, then recommend. Base every claim on the provided listings."

const interviewSystem = "You are a senior interview coach and former hiring manager who has conducted " +
	"over a thousand technical interviews. You prepare candidates with a mix of technical and behavioral " +
	"questions, STAR-method guidance, and notes on what interviewers are really evaluating. Ground every " +
	"question in the provided listings."

const careerSystem = "You are a senior career advisor with long experience in resume writing, ATS keyword " +
	"optimization, LinkedIn profile tuning, networking strategy, and application timing. Give structured, " +
	"actionable advice tailored to the specific roles and companies in the provided listings."

func buildSearchSummaryPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Below are job listings retrieved for %q positions in %s.\n\n", in.Role, in.Location)
	b.WriteString("Write a search summary report with these sections:\n")
	b.WriteString("- Search summary: number of jobs found, parameters used, overall market observations\n")
	b.WriteString("- Key skills and qualifications mentioned across multiple listings\n")
	b.WriteString("- Experience level patterns and salary trends where available\n")
	b.WriteString("- Notable companies hiring\n")
	b.WriteString("\nFormat with sections and bullet points for easy reading.\n")
	writeListings(&b, in)
	return b.String()
}

func buildSkillsPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the job listings below for %q positions, conduct a skills analysis and create a learning roadmap.\n\n", in.Role)
	b.WriteString("Step 1: extract ALL skills from each listing: technical skills, tools, soft skills, domain knowledge, certifications.\n")
	b.WriteString("Step 2: categorize and prioritize; skills mentioned in multiple listings are high priority. Separate required from nice-to-have.\n")
	b.WriteString("Step 3: for each high-priority skill, recommend specific learning resources (courses, books, hands-on projects) with realistic timelines.\n")
	b.WriteString("Step 4: finish with the top 5 skills to focus on immediately, noting quick wins versus longer-term investments.\n")
	b.WriteString("\nFor each priority skill report: name, category, frequency across listings, priority level, recommended resources, estimated learning time.\n")
	writeListings(&b, in)
	return b.String()
}

func buildInterviewPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the job listings below for %q positions, prepare interview preparation materials.\n\n", in.Role)
	b.WriteString("For each listing generate 8-10 likely interview questions mixing:\n")
	b.WriteString("- technical and domain questions based on the required skills\n")
	b.WriteString("- behavioral questions (teamwork, leadership, conflict resolution)\n")
	b.WriteString("- scenario questions drawn from the job description\n")
	b.WriteString("- company and role fit questions\n")
	b.WriteString("\nFor every question include: what the interviewer is evaluating, how to structure the answer (use the STAR method for behavioral questions), and key points to mention.\n")
	writeListings(&b, in)
	return b.String()
}

func buildCareerPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the job listings below for %q positions, provide strategic application advice.\n\n", in.Role)
	b.WriteString("Cover, with concrete examples:\n")
	b.WriteString("- resume optimization: critical ATS keywords from the listings, achievement-focused bullet points, quantifiable metrics\n")
	b.WriteString("- LinkedIn: headline, about section, experience descriptions, skills to surface\n")
	b.WriteString("- networking tactics for the specific companies hiring\n")
	b.WriteString("- application timing and follow-up practices, plus cover letter talking points per role\n")
	b.WriteString("\nMark each recommendation with a priority (high/medium/low) and a short rationale tied to these listings.\n")
	writeListings(&b, in)
	return b.String()
}

func writeListings(b *strings.Builder, in Input) {
	b.WriteString("\nJob listings report:\n\n")
	b.WriteString(in.ListingsReport)
	b.WriteString("\n\nUse only the listings above. Output plain structured text, no preamble.")
}
